package xkbstate

import "testing"

func TestShiftPressReleaseTogglesDepressed(t *testing.T) {
	s := New()

	mods, changed := s.UpdateKey(KeysymShiftL, KeyPressed)
	if !changed {
		t.Fatal("expected shift press to change modifiers")
	}
	if mods.Depressed&ModShift == 0 {
		t.Fatal("expected ModShift set in Depressed")
	}

	mods, changed = s.UpdateKey(KeysymShiftL, KeyReleased)
	if !changed {
		t.Fatal("expected shift release to change modifiers")
	}
	if mods.Depressed&ModShift != 0 {
		t.Fatal("expected ModShift cleared in Depressed after release")
	}
}

func TestCapsLockLocksOnPressOnly(t *testing.T) {
	s := New()

	mods, changed := s.UpdateKey(KeysymCapsLock, KeyPressed)
	if !changed || mods.Locked&ModLock == 0 {
		t.Fatal("expected caps lock press to set Locked")
	}

	// Release must not clear a locking modifier.
	mods, changed = s.UpdateKey(KeysymCapsLock, KeyReleased)
	if changed {
		t.Fatal("releasing caps lock should not change modifier state")
	}
	if mods.Locked&ModLock == 0 {
		t.Fatal("expected Locked to remain set after release")
	}

	// Pressing again toggles it off.
	mods, changed = s.UpdateKey(KeysymCapsLock, KeyPressed)
	if !changed || mods.Locked&ModLock != 0 {
		t.Fatal("expected second caps lock press to clear Locked")
	}
}

func TestNonModifierKeyDoesNotChangeModifiers(t *testing.T) {
	s := New()
	_, changed := s.UpdateKey(Keysym('a'), KeyPressed)
	if changed {
		t.Fatal("a plain key press should not change the modifier tuple")
	}
	if !s.Pressed(Keysym('a')) {
		t.Fatal("expected 'a' to be tracked as pressed")
	}
}

func TestSetLayoutReportsChange(t *testing.T) {
	s := New()
	if _, changed := s.SetLayout(0); changed {
		t.Fatal("setting the same layout (0) should not report a change")
	}
	mods, changed := s.SetLayout(1)
	if !changed || mods.Layout != 1 {
		t.Fatalf("expected layout change to 1, got %+v changed=%v", mods, changed)
	}
}

func TestPressedKeysSnapshot(t *testing.T) {
	s := New()
	s.UpdateKey(Keysym('a'), KeyPressed)
	s.UpdateKey(Keysym('b'), KeyPressed)
	s.UpdateKey(Keysym('b'), KeyReleased)

	keys := s.PressedKeys()
	if len(keys) != 1 || keys[0] != Keysym('a') {
		t.Fatalf("PressedKeys() = %v, want only 'a'", keys)
	}
}
