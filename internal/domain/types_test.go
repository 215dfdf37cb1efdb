package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAnchorJSONShape(t *testing.T) {
	rp := Right
	a := Anchor{Point: BottomRight, X: 0.4, Y: 0.3, RelativeTo: "frame-1", RelativePoint: &rp}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	// Numeric point tags on disk, not names.
	if !strings.Contains(s, `"point":8`) || !strings.Contains(s, `"relativePoint":5`) {
		t.Fatalf("expected numeric point tags, got %s", s)
	}
	var got Anchor
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Point != BottomRight || got.RelativeTo != "frame-1" || got.TargetPoint() != Right {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestAnchorOptionalFieldsOmitted(t *testing.T) {
	a := Anchor{Point: TopLeft, X: 0.1, Y: 0.2}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if strings.Contains(s, "relativeTo") || strings.Contains(s, "relativePoint") {
		t.Fatalf("absolute anchor must omit relative fields: %s", s)
	}
	var got Anchor
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.IsRelative() {
		t.Fatalf("anchor should be absolute after round trip")
	}
	if got.TargetPoint() != TopLeft {
		t.Fatalf("default relative point must be TOPLEFT")
	}
}

func TestProjectJSONRoundTrip(t *testing.T) {
	p := Project{
		Name:  "RoundTrip",
		Stage: DefaultStage(),
		Frames: []Frame{
			{
				ID: "root", Name: "Root", Kind: "BACKDROP",
				X: 0.1, Y: 0.1, Width: 0.2, Height: 0.1,
				Anchors: []Anchor{{Point: TopLeft, X: 0.1, Y: 0.2}},
				Visible: true,
			},
			{ID: "child", Name: "Child", Kind: "TEXT", ParentID: "root", Visible: true},
		},
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Project
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != p.Name || len(got.Frames) != 2 {
		t.Fatalf("unexpected structure: %+v", got)
	}
	if got.Frames[1].ParentID != "root" {
		t.Fatalf("parent link lost: %+v", got.Frames[1])
	}
}

func TestAnchorPointNames(t *testing.T) {
	if TopLeft.String() != "TOPLEFT" || BottomRight.String() != "BOTTOMRIGHT" {
		t.Fatalf("unexpected names: %s %s", TopLeft, BottomRight)
	}
	if AnchorPoint(42).String() != "UNKNOWN" {
		t.Fatalf("out-of-range point should stringify as UNKNOWN")
	}
	p, ok := ParseAnchorPoint("CENTER")
	if !ok || p != Center {
		t.Fatalf("ParseAnchorPoint(CENTER) = %v, %v", p, ok)
	}
	if _, ok := ParseAnchorPoint("MIDDLE"); ok {
		t.Fatalf("unknown name should not parse")
	}
}
