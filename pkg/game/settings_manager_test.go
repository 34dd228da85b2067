package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	manager, err := gdata.Open(gdata.Config{AppName: "farm_settings_test"})
	if err != nil {
		t.Skipf("gdata 不可用: %v", err)
	}
	return manager
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.WindowScale != 1 {
		t.Errorf("WindowScale: got %d, want 1", settings.WindowScale)
	}
	if settings.Fullscreen || settings.ShowDebug {
		t.Errorf("默认不应全屏或显示调试: %+v", settings)
	}
}

func TestSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.Persistent() {
		t.Error("降级模式不应持久化")
	}
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("降级模式 Save() 不应报错: %v", err)
	}
	if !sm.GetSettings().Fullscreen {
		t.Error("内存中的设置应保留")
	}
}

func TestSetWindowScaleClamp(t *testing.T) {
	sm := NewSettingsManager(nil)
	tests := []struct {
		in, want int
	}{
		{0, 1}, {1, 1}, {3, 3}, {4, 4}, {10, 4}, {-2, 1},
	}
	for _, tt := range tests {
		sm.SetWindowScale(tt.in)
		if got := sm.GetSettings().WindowScale; got != tt.want {
			t.Errorf("SetWindowScale(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSettingsSaveAndLoad(t *testing.T) {
	manager := openTestGdata(t)

	sm := NewSettingsManager(manager)
	sm.SetWindowScale(2)
	sm.SetShowDebug(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(manager)
	got := reloaded.GetSettings()
	if got.WindowScale != 2 || !got.ShowDebug || got.Fullscreen {
		t.Errorf("重新加载的设置不一致: %+v", *got)
	}
}

func TestSettingsLoadCorruptData(t *testing.T) {
	manager := openTestGdata(t)
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("windowScale: [oops")); err != nil {
		t.Fatal(err)
	}

	sm := &SettingsManager{gdataManager: manager, settings: DefaultSettings()}
	if err := sm.Load(); err == nil {
		t.Error("损坏的设置应返回错误")
	}
	if sm.GetSettings().WindowScale != 1 {
		t.Error("加载失败后应回到默认设置")
	}
}
