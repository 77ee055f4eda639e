package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWithErrorDoesNotMutateSentinel(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := ErrNetwork.WithError(cause)

	if ErrNetwork.Err != nil {
		t.Fatalf("sentinel was mutated: %v", ErrNetwork.Err)
	}
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
}

func TestIsMatchesByCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("geocode: %w", ErrNoResponse.WithDetail("status=500"))

	if !stderrors.Is(err, ErrNoResponse) {
		t.Fatalf("expected errors.Is to match ErrNoResponse")
	}
	if stderrors.Is(err, ErrNetwork) {
		t.Fatalf("did not expect ErrNetwork to match")
	}
}

func TestAsAppErrorStatus(t *testing.T) {
	var cases = []struct {
		err  error
		want int
	}{
		{ErrNetwork, http.StatusBadGateway},
		{ErrParsing, http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", ErrTripNotFound), http.StatusNotFound},
		{ErrInvalidParam.WithDetail("total must be positive"), http.StatusBadRequest},
		{stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		got := AsAppError(tc.err).HTTPStatus
		if got != tc.want {
			t.Fatalf("AsAppError(%v).HTTPStatus=%d want %d", tc.err, got, tc.want)
		}
	}
}
