package systems

import (
	"math"

	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/ecs"
	"github.com/decker502/farm/pkg/utils"
)

// CameraSystem 管理主镜头：跟随目标、死区和边界限制
//
// 目标在以镜头中心为中心的死区内移动时镜头不动；离开死区后，
// 镜头每帧按 Lerp 系数追赶超出死区的那段距离。最后把滚动量限制在镜头边界内。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID // 镜头实体ID
}

// NewCameraSystem 创建镜头系统，并创建视口大小为 width x height 的镜头实体
func NewCameraSystem(em *ecs.EntityManager, width, height float64) *CameraSystem {
	cs := &CameraSystem{entityManager: em}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Width:  width,
		Height: height,
		LerpX:  1,
		LerpY:  1,
	})
	return cs
}

// Camera 返回镜头组件
func (cs *CameraSystem) Camera() *components.CameraComponent {
	cam, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return cam
}

// SetBounds 设置镜头边界（世界坐标）
func (cs *CameraSystem) SetBounds(x, y, width, height float64) {
	cam := cs.Camera()
	cam.HasBounds = true
	cam.BoundsX, cam.BoundsY = x, y
	cam.BoundsWidth, cam.BoundsHeight = width, height
	cam.ScrollX, cam.ScrollY = cs.clamp(cam, cam.ScrollX, cam.ScrollY)
}

// SetDeadzone 设置跟随死区大小，0 表示没有死区
func (cs *CameraSystem) SetDeadzone(width, height float64) {
	cam := cs.Camera()
	cam.DeadzoneW, cam.DeadzoneH = width, height
}

// StartFollow 开始跟随目标，镜头立即移动到以目标为中心的位置
func (cs *CameraSystem) StartFollow(target ecs.EntityID, lerpX, lerpY float64) {
	cam := cs.Camera()
	cam.Target = uint64(target)
	cam.LerpX, cam.LerpY = lerpX, lerpY

	if pos, ok := ecs.GetComponent[*components.PositionComponent](cs.entityManager, target); ok {
		cam.ScrollX, cam.ScrollY = cs.clamp(cam, pos.X-cam.Width/2, pos.Y-cam.Height/2)
	}
}

// StopFollow 停止跟随
func (cs *CameraSystem) StopFollow() {
	cs.Camera().Target = 0
}

// Update 更新镜头位置
func (cs *CameraSystem) Update(dt float64) {
	cam := cs.Camera()
	if cam == nil || cam.Target == 0 {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](cs.entityManager, ecs.EntityID(cam.Target))
	if !ok {
		return
	}

	sx, sy := cam.ScrollX, cam.ScrollY
	if cam.DeadzoneW > 0 || cam.DeadzoneH > 0 {
		// 死区以当前镜头中心为中心
		dzLeft := sx + (cam.Width-cam.DeadzoneW)/2
		dzTop := sy + (cam.Height-cam.DeadzoneH)/2
		dzRight := dzLeft + cam.DeadzoneW
		dzBottom := dzTop + cam.DeadzoneH

		if pos.X < dzLeft {
			sx = utils.Lerp(sx, sx-(dzLeft-pos.X), cam.LerpX)
		} else if pos.X > dzRight {
			sx = utils.Lerp(sx, sx+(pos.X-dzRight), cam.LerpX)
		}
		if pos.Y < dzTop {
			sy = utils.Lerp(sy, sy-(dzTop-pos.Y), cam.LerpY)
		} else if pos.Y > dzBottom {
			sy = utils.Lerp(sy, sy+(pos.Y-dzBottom), cam.LerpY)
		}
	} else {
		sx = utils.Lerp(sx, pos.X-cam.Width/2, cam.LerpX)
		sy = utils.Lerp(sy, pos.Y-cam.Height/2, cam.LerpY)
	}

	cam.ScrollX, cam.ScrollY = cs.clamp(cam, sx, sy)
}

// clamp 把滚动量限制在边界内；边界比视口小时贴住边界左上角
func (cs *CameraSystem) clamp(cam *components.CameraComponent, sx, sy float64) (float64, float64) {
	if !cam.HasBounds {
		return sx, sy
	}
	maxX := math.Max(cam.BoundsX, cam.BoundsX+cam.BoundsWidth-cam.Width)
	maxY := math.Max(cam.BoundsY, cam.BoundsY+cam.BoundsHeight-cam.Height)
	return math.Min(math.Max(sx, cam.BoundsX), maxX), math.Min(math.Max(sy, cam.BoundsY), maxY)
}

// WorldToScreen 把世界坐标转换为屏幕坐标
// scrollFactor 为 0 时坐标固定在屏幕上（HUD），为 1 时随镜头滚动
func (cs *CameraSystem) WorldToScreen(x, y, scrollFactor float64) (float64, float64) {
	cam := cs.Camera()
	return x - math.Round(cam.ScrollX)*scrollFactor, y - math.Round(cam.ScrollY)*scrollFactor
}
