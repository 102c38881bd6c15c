package config

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		path   string
		want   EventType
		wantOK bool
	}{
		{"/home/x/.agentscope/settings.yaml", EventSettingsChanged, true},
		{"/home/x/.agentscope/credentials.yaml", EventCredentialsChanged, true},
		{"/home/x/.agentscope/state.yaml", EventStateChanged, true},
		{"/home/x/.agentscope/settings.yaml.swp", 0, false},
		{"/home/x/.agentscope/other.txt", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := classify(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("classify(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("classify(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
