package member

import (
	"errors"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"09121234567", "+989121234567", nil},
		{"+98 912 123 4567", "+989121234567", nil},
		{"", "", nil},
		{"12", "", ErrInvalidPhone},
		{"not a phone", "", ErrInvalidPhone},
	}
	for _, tt := range tests {
		got, err := NormalizePhone(tt.in)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("NormalizePhone(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	s := New(nil).(*memberService)

	valid := Request{FullName: " Sara ", NationalCode: "0012345678", PhoneNumber: "09121234567", Email: "S@Example.com"}
	m, err := s.normalize(valid)
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	if m.FullName != "Sara" || m.Email != "s@example.com" || m.PhoneNumber != "+989121234567" {
		t.Errorf("normalize() = %+v", m)
	}

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"no name", func(r *Request) { r.FullName = "  " }, ErrFullNameRequired},
		{"short national code", func(r *Request) { r.NationalCode = "123" }, ErrInvalidNationalCode},
		{"letters in national code", func(r *Request) { r.NationalCode = "00123456ab" }, ErrInvalidNationalCode},
		{"bad email", func(r *Request) { r.Email = "nope" }, ErrInvalidEmail},
		{"bad phone", func(r *Request) { r.PhoneNumber = "555" }, ErrInvalidPhone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if _, err := s.normalize(r); !errors.Is(err, tt.wantErr) {
				t.Errorf("normalize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
