package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("lead not found"), http.StatusNotFound},
		{InvalidArgument("minScore must be a number"), http.StatusBadRequest},
		{AlreadyConverted("lead already converted"), http.StatusBadRequest},
		{Store("server error", errors.New("conn reset")), http.StatusInternalServerError},
		{Unauthorized("missing token"), http.StatusUnauthorized},
		{&Error{Message: "boom"}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("%q: expected status %d, got %d", tc.err.Message, tc.want, got)
		}
	}
}

func TestGetKindFollowsWrappedErrors(t *testing.T) {
	base := AlreadyConverted("lead already converted")
	wrapped := fmt.Errorf("convert: %w", base)

	if !Is(wrapped, KindAlreadyConverted) {
		t.Fatalf("expected wrapped error to be KindAlreadyConverted, got %v", GetKind(wrapped))
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatalf("expected plain error to be KindUnknown")
	}
}

func TestStoreKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Store("failed to load lead", cause).WithOp("leads.GetByID")

	if !errors.Is(err, cause) {
		t.Fatalf("expected store error to unwrap to cause")
	}
	if err.Error() != "leads.GetByID: failed to load lead" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
