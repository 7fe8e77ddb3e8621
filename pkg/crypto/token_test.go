package crypto

import "testing"

func TestGenerateHashedToken(t *testing.T) {
	pair, err := GenerateHashedToken()
	if err != nil {
		t.Fatalf("GenerateHashedToken() error = %v", err)
	}
	if pair.Token == "" || pair.Hash == "" {
		t.Fatal("GenerateHashedToken() returned empty token or hash")
	}
	if pair.Token == pair.Hash {
		t.Error("token and hash are identical")
	}
	if pair.Hash != HashToken(pair.Token) {
		t.Error("stored hash does not match HashToken(token)")
	}

	// SHA-256 hex is always 64 characters
	if len(pair.Hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(pair.Hash))
	}
}

func TestGenerateHashedToken_Unique(t *testing.T) {
	first, err := GenerateHashedToken()
	if err != nil {
		t.Fatalf("GenerateHashedToken() error = %v", err)
	}
	second, err := GenerateHashedToken()
	if err != nil {
		t.Fatalf("GenerateHashedToken() error = %v", err)
	}
	if first.Token == second.Token {
		t.Error("two generated tokens are identical")
	}
}

func TestVerifyToken(t *testing.T) {
	pair, err := GenerateHashedToken()
	if err != nil {
		t.Fatalf("GenerateHashedToken() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		hash    string
		want    bool
		wantErr bool
	}{
		{"valid", pair.Token, pair.Hash, true, false},
		{"wrong token", "some-other-token", pair.Hash, false, false},
		{"empty token", "", pair.Hash, false, true},
		{"empty hash", pair.Token, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyToken(tt.token, tt.hash)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("VerifyToken() = %v, want %v", got, tt.want)
			}
		})
	}
}
