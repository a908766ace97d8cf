package planner

import "testing"

func TestParseFramesSingleBlock(t *testing.T) {
	frames, rest := ParseFrames("", "event: parse\ndata: {\"nights\":3}\n\n")
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if frames[0].Event != EventParse {
		t.Fatalf("expected parse event, got %q", frames[0].Event)
	}
	if string(frames[0].Data) != `{"nights":3}` {
		t.Fatalf("unexpected payload %q", frames[0].Data)
	}
	if rest != "" {
		t.Fatalf("expected empty carry, got %q", rest)
	}
}

func TestParseFramesCarryAcrossChunks(t *testing.T) {
	frames, rest := ParseFrames("", "event: plan\ndata: {\"itin")
	if len(frames) != 0 {
		t.Fatalf("expected no frames from partial block, got %d", len(frames))
	}
	if rest == "" {
		t.Fatal("expected a carry buffer")
	}

	frames, rest = ParseFrames(rest, "erary\":[]}\n\nevent: done\ndata: {\"ok\":true}\n\n")
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].Event != EventPlan || frames[1].Event != EventDone {
		t.Fatalf("unexpected events %q, %q", frames[0].Event, frames[1].Event)
	}
	if string(frames[0].Data) != `{"itinerary":[]}` {
		t.Fatalf("reassembled payload wrong: %q", frames[0].Data)
	}
	if rest != "" {
		t.Fatalf("expected empty carry, got %q", rest)
	}
}

func TestParseFramesDefaultsToMessage(t *testing.T) {
	frames, _ := ParseFrames("", "data: {\"x\":1}\n\n")
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if frames[0].Event != EventMessage {
		t.Fatalf("expected message event, got %q", frames[0].Event)
	}
}

func TestParseFramesDropsInvalidJSON(t *testing.T) {
	frames, rest := ParseFrames("", "event: parse\ndata: not json\n\nevent: pricing\ndata: {\"pricing\":null}\n\n")
	if len(frames) != 1 {
		t.Fatalf("expected invalid payload dropped, got %d frames", len(frames))
	}
	if frames[0].Event != EventPricing {
		t.Fatalf("expected pricing event, got %q", frames[0].Event)
	}
	if rest != "" {
		t.Fatalf("expected empty carry, got %q", rest)
	}
}

func TestParseFramesSkipsEmptyBlocks(t *testing.T) {
	frames, _ := ParseFrames("", "\n\n\n\nevent: done\ndata: {\"ok\":true}\n\n")
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
}

func TestParseFramesMultiLineData(t *testing.T) {
	frames, _ := ParseFrames("", "event: plan\ndata: {\"itinerary\":\ndata: []}\n\n")
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if string(frames[0].Data) != `{"itinerary":[]}` {
		t.Fatalf("multi-line data joined wrong: %q", frames[0].Data)
	}
}
