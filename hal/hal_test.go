package hal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFramebufferPresentPublishesBackBuffer(t *testing.T) {
	fb := newHostFramebuffer(4, 2)
	if fb.StrideBytes() != 16 || len(fb.Buffer()) != 32 {
		t.Fatalf("stride=%d len=%d", fb.StrideBytes(), len(fb.Buffer()))
	}
	fb.ClearRGB(10, 20, 30)

	dst := make([]byte, 32)
	fb.snapshot(dst)
	if dst[0] != 0 {
		t.Fatalf("front buffer changed before Present")
	}
	if err := fb.Present(); err != nil {
		t.Fatal(err)
	}
	w, h := fb.snapshot(dst)
	if w != 4 || h != 2 {
		t.Fatalf("size=%dx%d", w, h)
	}
	if dst[28] != 10 || dst[29] != 20 || dst[30] != 30 || dst[31] != 0xFF {
		t.Fatalf("last pixel=%v", dst[28:32])
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := newHostFramebuffer(4, 4)
	if fb.resize(4, 4) {
		t.Fatalf("resize to the same size reported a change")
	}
	if !fb.resize(8, 3) {
		t.Fatalf("resize did not report a change")
	}
	if fb.Width() != 8 || fb.Height() != 3 || len(fb.Buffer()) != 8*3*4 {
		t.Fatalf("got %dx%d len=%d", fb.Width(), fb.Height(), len(fb.Buffer()))
	}
	fb.resize(0, -1)
	if fb.Width() != 1 || fb.Height() != 1 {
		t.Fatalf("degenerate size not clamped: %dx%d", fb.Width(), fb.Height())
	}
}

func TestVirtualClockOnlyMovesOnStep(t *testing.T) {
	c := newVirtualClock(headlessEpoch)
	if !c.Now().Equal(headlessEpoch) {
		t.Fatalf("start=%v", c.Now())
	}
	c.step(50 * time.Millisecond)
	c.step(50 * time.Millisecond)
	if got := c.Now().Sub(headlessEpoch); got != 100*time.Millisecond {
		t.Fatalf("elapsed=%v", got)
	}
}

func TestRunHeadlessStopsAfterFrames(t *testing.T) {
	var (
		steps int
		clk   Clock
		fb    Framebuffer
	)
	newApp := func(h HAL) (func() error, error) {
		clk = h.Clock()
		fb = h.Display().Framebuffer()
		return func() error {
			steps++
			return nil
		}, nil
	}
	cfg := HeadlessConfig{Enabled: true, Hz: 1000, Frames: 5, Width: 16, Height: 8}
	if err := RunHeadless(context.Background(), newApp, cfg); err != nil {
		t.Fatal(err)
	}
	if steps != 5 {
		t.Fatalf("steps=%d", steps)
	}
	if got := clk.Now().Sub(headlessEpoch); got != 5*time.Millisecond {
		t.Fatalf("virtual time=%v", got)
	}
	if fb.Width() != 16 || fb.Height() != 8 || fb.Format() != PixelFormatRGBA8888 {
		t.Fatalf("framebuffer %dx%d format=%d", fb.Width(), fb.Height(), fb.Format())
	}
}

func TestRunHeadlessPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), func(HAL) (func() error, error) {
		return nil, boom
	}, HeadlessConfig{Hz: 1000, Frames: 1})
	if !errors.Is(err, boom) {
		t.Fatalf("newApp error: %v", err)
	}

	err = RunHeadless(context.Background(), func(HAL) (func() error, error) {
		return func() error { return boom }, nil
	}, HeadlessConfig{Hz: 1000, Frames: 3})
	if !errors.Is(err, boom) {
		t.Fatalf("step error: %v", err)
	}
}

func TestRunHeadlessHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	err := RunHeadless(ctx, func(HAL) (func() error, error) {
		return func() error {
			steps++
			if steps == 2 {
				cancel()
			}
			return nil
		}, nil
	}, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
}

func TestRunHeadlessFeedsScriptedKeys(t *testing.T) {
	var got [][]KeyEvent
	newApp := func(h HAL) (func() error, error) {
		ch := h.Input().Keyboard().Events()
		return func() error {
			var frame []KeyEvent
			for len(ch) > 0 {
				frame = append(frame, <-ch)
			}
			got = append(got, frame)
			return nil
		}, nil
	}
	cfg := HeadlessConfig{Hz: 1000, Frames: 3, Keys: []ScriptedKey{
		{Frame: 1, KeyEvent: KeyEvent{Key: "W", Press: true}},
		{Frame: 1, KeyEvent: KeyEvent{Key: "F5", Press: true}},
		{Frame: 2, KeyEvent: KeyEvent{Key: "W", Press: false}},
	}}
	if err := RunHeadless(context.Background(), newApp, cfg); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || len(got[0]) != 0 || len(got[1]) != 2 || len(got[2]) != 1 {
		t.Fatalf("events per frame: %v", got)
	}
	if got[1][1].Key != "F5" || got[2][0].Press {
		t.Fatalf("events: %v", got)
	}
}

func TestKeyboardFeedDropsWhenFull(t *testing.T) {
	k := newHostKeyboard()
	for i := 0; i < cap(k.ch); i++ {
		if !k.feed(KeyEvent{Key: "A", Press: true}) {
			t.Fatalf("feed %d dropped", i)
		}
	}
	if k.feed(KeyEvent{Key: "B", Press: true}) {
		t.Fatalf("feed past capacity accepted")
	}
}
