package input

import "testing"

func TestMapToIntent(t *testing.T) {
	cases := []struct {
		code string
		want Action
	}{
		{"r", ActionRun},
		{"enter", ActionRun},
		{"escape", ActionCancel},
		{"tab", ActionNextRoom},
		{"shift_tab", ActionPrevRoom},
		{"arrow_up", ActionPanUp},
		{"+", ActionZoomIn},
		{"-", ActionZoomOut},
		{"0", ActionResetView},
		{"f2", ActionDumpTerrain},
		{"f12", ActionScreenshot},
		{"ctrl_c", ActionQuit},
		{"unbound", ActionNone},
		{"", ActionNone},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			if got := IntentFor(DeviceKeyboard, tc.code).Action; got != tc.want {
				t.Errorf("IntentFor(%q) = %s, want %s", tc.code, ActionName(got), ActionName(tc.want))
			}
		})
	}
}

func TestGetBindingsByAction_Sorted(t *testing.T) {
	codes := GetBindingsByAction()[ActionRun]
	if len(codes) < 2 {
		t.Fatalf("ActionRun bindings = %v", codes)
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Errorf("bindings not sorted: %v", codes)
		}
	}
}

func TestSetSingleBinding(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for k, v := range bindings {
		saved[k] = v
	}
	t.Cleanup(func() { bindings = saved })

	SetSingleBinding(ActionPanUp, "w")
	if IntentFor(DeviceKeyboard, "w").Action != ActionPanUp {
		t.Error("new binding not applied")
	}
	if IntentFor(DeviceKeyboard, "k").Action != ActionNone {
		t.Error("old binding for the action was kept")
	}
	if IntentFor(DeviceKeyboard, "arrow_up").Action != ActionPanUp {
		t.Error("reserved binding was removed")
	}

	SetSingleBinding(ActionQuit, "arrow_down")
	if IntentFor(DeviceKeyboard, "arrow_down").Action != ActionPanDown {
		t.Error("reserved code was reassigned")
	}
}

func TestActionName(t *testing.T) {
	for a := ActionNone; a <= ActionQuit; a++ {
		if ActionName(a) == "" {
			t.Errorf("ActionName(%d) is empty", a)
		}
	}
	if ActionName(ActionRun) == ActionName(ActionNone) {
		t.Error("ActionRun has the fallback name")
	}
}
