package diagnostics_test

import (
	"testing"

	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/token"
)

func TestFirstDiagnosticAtPositionWins(t *testing.T) {
	s := diagnostics.NewSink()
	pos := token.Pos{Line: 1, Column: 5}
	s.ReportAt(pos, diagnostics.ErrCannotResolve, "first")
	s.ReportAt(pos, diagnostics.ErrCannotResolve, "second")

	got := s.Diagnostics()
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(got))
	}
	if got[0].Message != "first" {
		t.Fatalf("expected the first-recorded message to win, got %q", got[0].Message)
	}
}

func TestDiagnosticsSortedByPosition(t *testing.T) {
	s := diagnostics.NewSink()
	s.ReportAt(token.Pos{Line: 2, Column: 1}, diagnostics.ErrCannotResolve, "b")
	s.ReportAt(token.Pos{Line: 1, Column: 9}, diagnostics.ErrCannotResolve, "a1")
	s.ReportAt(token.Pos{Line: 1, Column: 1}, diagnostics.ErrCannotResolve, "a0")

	got := s.Diagnostics()
	if len(got) != 3 || got[0].Message != "a0" || got[1].Message != "a1" || got[2].Message != "b" {
		t.Fatalf("diagnostics not sorted by position: %v", got)
	}
}

func TestNewSinkMintsDistinctSessionIDs(t *testing.T) {
	a := diagnostics.NewSink()
	b := diagnostics.NewSink()
	if a.SessionID == "" || a.SessionID == b.SessionID {
		t.Fatalf("expected distinct non-empty session ids, got %q and %q", a.SessionID, b.SessionID)
	}
}

func TestToProtoRendersSessionAndDiagnostics(t *testing.T) {
	s := diagnostics.NewSink()
	s.ReportAt(token.Pos{Line: 3, Column: 4}, diagnostics.ErrArity, "Expected 1 arguments, but got 2.")

	pb, err := s.ToProto()
	if err != nil {
		t.Fatalf("ToProto: %v", err)
	}
	fields := pb.GetFields()
	if fields["sessionId"].GetStringValue() != s.SessionID {
		t.Fatalf("sessionId mismatch: %v", fields["sessionId"])
	}
	items := fields["diagnostics"].GetListValue().GetValues()
	if len(items) != 1 {
		t.Fatalf("expected 1 diagnostic in proto, got %d", len(items))
	}
	msg := items[0].GetStructValue().GetFields()["message"].GetStringValue()
	if msg != "Expected 1 arguments, but got 2." {
		t.Fatalf("unexpected message field: %q", msg)
	}
}
