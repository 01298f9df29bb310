package security

import "testing"

func TestValidateRepoName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Simple", "demo", false},
		{"WithDash", "port-scanner", false},
		{"WithDotAndUnderscore", "my_tool.v2", false},
		{"Empty", "", true},
		{"Dot", ".", true},
		{"DotDot", "..", true},
		{"Slash", "a/b", true},
		{"Space", "my repo", true},
		{"Shell", "x;rm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRepoName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRepoName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
