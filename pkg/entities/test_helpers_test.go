package entities

import (
	"os"
	"testing"

	"github.com/decker502/farm/pkg/config"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/game"
)

var repoFS = os.DirFS("../..")

// testEnv 加载仓库里的配置，资源全部使用占位图
type testEnv struct {
	em    *ecs.EntityManager
	rm    *game.ResourceManager
	cfg   *config.GameConfig
	anims *config.AnimationConfig
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg, err := config.LoadGameConfig(repoFS, config.GameConfigPath)
	if err != nil {
		t.Fatalf("加载游戏配置失败: %v", err)
	}
	anims, err := config.LoadAnimationConfig(repoFS, config.AnimationConfigPath)
	if err != nil {
		t.Fatalf("加载动画配置失败: %v", err)
	}
	return &testEnv{
		em:    ecs.NewEntityManager(),
		rm:    game.NewResourceManager(nil),
		cfg:   cfg,
		anims: anims,
	}
}
