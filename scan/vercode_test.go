package scan

import "testing"

const emptyCode = "da39a3ee5e6b4b0d3255bfef95601890afd80709"

func TestVerificationCode(t *testing.T) {
	tests := []struct {
		name     string
		hashes   []string
		excluded map[string]bool
		want     string
	}{
		{
			name:   "no hashes",
			hashes: nil,
			want:   emptyCode,
		},
		{
			name:   "single hash",
			hashes: []string{"bbb"},
			want:   "5cb138284d431abd6a053a56625ec088bfb88912", // sha1("bbb")
		},
		{
			name:   "two hashes sorted",
			hashes: []string{"aaa", "bbb"},
			want:   "68d8572c2662b0f06f723d7d507954fb038b8558", // sha1("aaabbb")
		},
		{
			name:   "order does not matter",
			hashes: []string{"bbb", "aaa"},
			want:   "68d8572c2662b0f06f723d7d507954fb038b8558",
		},
		{
			name:   "duplicates collapse",
			hashes: []string{"bbb", "aaa", "bbb", "aaa", "aaa"},
			want:   "68d8572c2662b0f06f723d7d507954fb038b8558",
		},
		{
			name:   "three hashes",
			hashes: []string{"ccc", "aaa", "bbb"},
			want:   "395e4981d467d1bd120dfb708ed4e3869c34bc04", // sha1("aaabbbccc")
		},
		{
			name:     "excluded hash dropped",
			hashes:   []string{"aaa", "bbb", "ccc"},
			excluded: map[string]bool{"aaa": true, "ccc": true},
			want:     "5cb138284d431abd6a053a56625ec088bfb88912",
		},
		{
			name:     "all excluded yields empty code",
			hashes:   []string{"aaa", "bbb"},
			excluded: map[string]bool{"aaa": true, "bbb": true},
			want:     emptyCode,
		},
		{
			name:     "exclusion of absent hash is harmless",
			hashes:   []string{"aaa", "bbb"},
			excluded: map[string]bool{"zzz": true},
			want:     "68d8572c2662b0f06f723d7d507954fb038b8558",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerificationCode(tt.hashes, tt.excluded)
			if got != tt.want {
				t.Errorf("VerificationCode(%v) = %v, want %v", tt.hashes, got, tt.want)
			}
		})
	}
}

func TestVerificationCode_RealDigests(t *testing.T) {
	alpha := HashString("alpha\n")
	beta := HashString("beta\n")

	got := VerificationCode([]string{alpha, beta, alpha}, nil)
	if want := "1a32af48cdcc391d050c917d40b07dbb9272f075"; got != want {
		t.Errorf("VerificationCode(alpha, beta, alpha) = %v, want %v", got, want)
	}

	got = VerificationCode([]string{alpha, beta, alpha}, map[string]bool{alpha: true})
	if want := "c1ed6d3c7f7db0efe8fc30611c6f492213603e65"; got != want {
		t.Errorf("VerificationCode with alpha excluded = %v, want %v", got, want)
	}
}

func TestVerificationCode_DoesNotMutateInput(t *testing.T) {
	hashes := []string{"ccc", "aaa", "bbb"}
	VerificationCode(hashes, nil)

	if hashes[0] != "ccc" || hashes[1] != "aaa" || hashes[2] != "bbb" {
		t.Errorf("VerificationCode() reordered its input: %v", hashes)
	}
}
