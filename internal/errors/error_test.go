package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New(CodeUnsupportedNodeType)

	if err.Code != CodeUnsupportedNodeType {
		t.Errorf("Code = %q", err.Code)
	}
	if err.Category != CategoryRuntime {
		t.Errorf("Category = %q, want runtime", err.Category)
	}
	if err.Message == "" || err.DocURL == "" {
		t.Errorf("template fields missing: %+v", err)
	}
	if !strings.HasPrefix(err.Error(), "E101: ") {
		t.Errorf("Error() = %q, want E101 prefix", err.Error())
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" || err.Message != "Unknown error" {
		t.Errorf("err = %+v", err)
	}
}

func TestWithDetailAndSuggestion(t *testing.T) {
	err := New(CodeMountTargetMissing).
		WithDetail("target was %q", "nil").
		WithSuggestion("pass Document.Body()")

	if err.Detail != `target was "nil"` {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Suggestion != "pass Document.Body()" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
}

func TestIs(t *testing.T) {
	err := New(CodeFrameDecode)

	if !Is(err, CodeFrameDecode) {
		t.Error("Is should match the code")
	}
	if Is(err, CodeSessionLimit) {
		t.Error("Is matched the wrong code")
	}
	if Is(stderrors.New("plain"), CodeFrameDecode) {
		t.Error("Is matched a non-LoomError")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeFrameDecode) != nil {
		t.Error("FromError(nil) should be nil")
	}

	inner := New(CodeUnknownTarget)
	if got := FromError(inner, CodeFrameDecode); got != inner {
		t.Error("FromError should pass LoomError through unchanged")
	}

	plain := stderrors.New("boom")
	wrapped := FromError(plain, CodeFrameDecode)
	if wrapped.Code != CodeFrameDecode {
		t.Errorf("Code = %q", wrapped.Code)
	}
	if !stderrors.Is(wrapped, plain) {
		t.Error("wrapped error lost the cause")
	}
}

func TestFormatContainsParts(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeSessionLimit).WithSuggestion("raise MaxSessions")
	out := err.Format()

	for _, part := range []string{"E140", "Session limit reached", "raise MaxSessions"} {
		if !strings.Contains(out, part) {
			t.Errorf("Format() missing %q:\n%s", part, out)
		}
	}
}

func TestRegister(t *testing.T) {
	Register("E900", ErrorTemplate{
		Category: CategoryCLI,
		Message:  "Test error",
	})
	defer delete(registry, "E900")

	err := New("E900")
	if err.Category != CategoryCLI || err.Message != "Test error" {
		t.Errorf("err = %+v", err)
	}
}
