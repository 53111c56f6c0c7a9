package errors

import (
	"errors"
	"io/fs"
	"testing"
)

func TestLoadError(t *testing.T) {
	err := NewLoadError("read", "data/spells.json", fs.ErrNotExist)

	if err.Type != ErrorTypeLoad {
		t.Errorf("Expected Type to be ErrorTypeLoad, got %v", err.Type)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected error to unwrap to fs.ErrNotExist")
	}
	expected := "load read failed for data/spells.json: file does not exist"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if err.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("spells.json", 3, "level out of range").WithRecord("fireball")
	expected := "invalid record at spells.json[3] (fireball): level out of range"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
	if err.Unwrap() != nil {
		t.Error("Expected no underlying error")
	}

	cause := errors.New("duplicate")
	fileErr := NewValidationError("features.json", -1, "bad file").WithCause(cause)
	if !errors.Is(fileErr, cause) {
		t.Error("Expected error to unwrap to cause")
	}
	expected = "invalid record at features.json: bad file: duplicate"
	if fileErr.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, fileErr.Error())
	}

	var target *ValidationError
	if !errors.As(error(fileErr), &target) {
		t.Error("errors.As should find ValidationError")
	}
}

func TestIndexAndSearchErrors(t *testing.T) {
	cause := errors.New("closed")
	ie := NewIndexError("batch", cause)
	if ie.Error() != "index batch failed: closed" || !errors.Is(ie, cause) {
		t.Errorf("Unexpected index error %q", ie.Error())
	}

	se := NewSearchError("cura", cause)
	if se.Error() != `search failed for query "cura": closed` || !errors.Is(se, cause) {
		t.Errorf("Unexpected search error %q", se.Error())
	}
}

func TestConfigError(t *testing.T) {
	underlying := errors.New("must be positive")
	err := NewConfigError("search.page_size", "0", underlying)
	expected := "config error for field search.page_size (value 0): must be positive"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, underlying) {
		t.Error("Expected error to unwrap")
	}
}

func TestMultiError(t *testing.T) {
	e1 := errors.New("one")
	e2 := errors.New("two")

	if NewMultiError([]error{nil, nil}).ErrOrNil() != nil {
		t.Error("Expected nil for empty multi-error")
	}

	single := NewMultiError([]error{nil, e1})
	if single.Error() != "one" {
		t.Errorf("Expected single message, got %q", single.Error())
	}

	multi := NewMultiError([]error{e1, e2})
	if !errors.Is(multi, e2) {
		t.Error("Expected errors.Is to see through multi-error")
	}
	if multi.Error() != "2 errors: [one two]" {
		t.Errorf("Unexpected message %q", multi.Error())
	}
}
