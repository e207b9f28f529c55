package generation

import (
	"errors"
	"testing"
)

func TestParseEmailDraft(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    EmailDraft
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"subject":"Boost sales","body":"Hi {{firstName}},\nLet's talk."}`,
			want: EmailDraft{Subject: "Boost sales", Body: "Hi {{firstName}},\nLet's talk."},
		},
		{
			name: "fenced json",
			raw:  "```json\n{\n  \"subject\": \" Hello \",\n  \"body\": \"World\"\n}\n```",
			want: EmailDraft{Subject: "Hello", Body: "World"},
		},
		{
			name: "surrounding prose",
			raw:  "Here is your email:\n{\"subject\":\"S\",\"body\":\"B\"}\nEnjoy!",
			want: EmailDraft{Subject: "S", Body: "B"},
		},
		{name: "missing body", raw: `{"subject":"S"}`, wantErr: true},
		{name: "missing subject", raw: `{"body":"B"}`, wantErr: true},
		{name: "not json", raw: "Subject: hi", wantErr: true},
		{name: "broken json", raw: `{"subject": "S", "body": }`, wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEmailDraft(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEmailDraft) {
					t.Fatalf("expected ErrInvalidEmailDraft, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}
