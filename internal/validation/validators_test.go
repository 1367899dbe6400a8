package validation

import "testing"

func TestValidatePort(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"ssh", 22, false},
		{"high", 2222, false},
		{"max", 65535, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"too high", 65536, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePort(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePort(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateListenAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"any v4", "0.0.0.0", false},
		{"loopback", "127.0.0.1", false},
		{"v6", "::1", false},
		{"any v6", "::", false},
		{"empty", "", true},
		{"hostname", "bastion.example.com", true},
		{"garbage", "not an ip", true},
		{"cidr", "10.0.0.0/8", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListenAddress(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateListenAddress(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateServiceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"ssh", "ssh", false},
		{"sshd", "sshd", false},
		{"full unit", "ssh.service", false},
		{"templated", "sshd@.service", false},
		{"empty", "", true},
		{"space", "ssh d", true},
		{"semicolon injection", "ssh;rm", true},
		{"pipe injection", "ssh|cat", true},
		{"dollar sign", "ssh$USER", true},
		{"backtick", "ssh`whoami`", true},
		{"newline", "ssh\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServiceName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateServiceName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"sshd config", "/etc/ssh/sshd_config", false},
		{"host key", "/etc/ssh/ssh_host_ed25519_key", false},
		{"empty", "", true},
		{"relative", "etc/ssh/sshd_config", true},
		{"dot dot", "/etc/ssh/../passwd", true},
		{"trailing slash", "/etc/ssh/", true},
		{"space", "/etc/ssh/my config", true},
		{"semicolon", "/etc/ssh;rm", true},
		{"backtick", "/etc/`whoami`", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
