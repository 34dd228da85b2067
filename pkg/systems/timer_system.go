package systems

import (
	"github.com/charmbracelet/log"
	"github.com/decker502/farm/pkg/components"
	"github.com/decker502/farm/pkg/ecs"
)

// timerEvent 一个计时事件
type timerEvent struct {
	id      components.TimerID
	owner   ecs.EntityID // 0 表示不属于任何实体
	delay   float64
	elapsed float64
	loop    bool
	fn      func()
	dead    bool
}

// TimerSystem 基于游戏时间的调度器
//
// 只用游戏时间推进（场景暂停或窗口失焦时计时器也暂停）。
// 带 owner 的事件在 owner 实体被标记删除后不会再触发，并在实体清理时释放。
type TimerSystem struct {
	entityManager *ecs.EntityManager
	nextID        components.TimerID
	events        []*timerEvent
	byID          map[components.TimerID]*timerEvent
}

// NewTimerSystem 创建计时系统，并注册实体删除回调
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	ts := &TimerSystem{
		entityManager: em,
		nextID:        1,
		byID:          make(map[components.TimerID]*timerEvent),
	}
	em.OnDestroy(ts.CancelOwner)
	return ts
}

// DelayedCall delay 秒后调用一次 fn
func (ts *TimerSystem) DelayedCall(delay float64, fn func()) components.TimerID {
	return ts.add(0, delay, false, fn)
}

// DelayedCallFor 与 DelayedCall 相同，但 owner 被删除时自动取消
func (ts *TimerSystem) DelayedCallFor(owner ecs.EntityID, delay float64, fn func()) components.TimerID {
	return ts.add(owner, delay, false, fn)
}

// AddEvent 每隔 delay 秒循环调用 fn，直到被取消或 owner 被删除
func (ts *TimerSystem) AddEvent(owner ecs.EntityID, delay float64, fn func()) components.TimerID {
	return ts.add(owner, delay, true, fn)
}

func (ts *TimerSystem) add(owner ecs.EntityID, delay float64, loop bool, fn func()) components.TimerID {
	if delay < 0 {
		delay = 0
	}
	ev := &timerEvent{
		id:    ts.nextID,
		owner: owner,
		delay: delay,
		loop:  loop,
		fn:    fn,
	}
	ts.nextID++
	ts.events = append(ts.events, ev)
	ts.byID[ev.id] = ev
	return ev.id
}

// Cancel 取消计时事件，重复取消或无效 ID 会被忽略
func (ts *TimerSystem) Cancel(id components.TimerID) {
	if ev, ok := ts.byID[id]; ok {
		ev.dead = true
		delete(ts.byID, id)
	}
}

// CancelOwner 取消某个实体拥有的全部计时事件
func (ts *TimerSystem) CancelOwner(owner ecs.EntityID) {
	if owner == 0 {
		return
	}
	for _, ev := range ts.events {
		if ev.owner == owner && !ev.dead {
			ts.Cancel(ev.id)
		}
	}
}

// IsPending 事件是否仍在等待触发
func (ts *TimerSystem) IsPending(id components.TimerID) bool {
	_, ok := ts.byID[id]
	return ok
}

// Pending 当前等待中的事件数量
func (ts *TimerSystem) Pending() int {
	return len(ts.byID)
}

// Update 推进所有事件
//
// 本帧回调中新增的事件从下一帧开始计时；每个循环事件每帧最多触发一次。
func (ts *TimerSystem) Update(dt float64) {
	current := ts.events
	for _, ev := range current {
		if ev.dead {
			continue
		}
		if ev.owner != 0 && !ts.entityManager.IsAlive(ev.owner) {
			log.Debugf("[TimerSystem] drop timer %d: owner %d is gone", ev.id, ev.owner)
			ts.Cancel(ev.id)
			continue
		}

		ev.elapsed += dt
		if ev.elapsed < ev.delay {
			continue
		}

		if ev.loop {
			ev.elapsed -= ev.delay
		} else {
			ts.Cancel(ev.id)
		}
		ev.fn()
	}

	// 压缩：保留未完成的事件（包括本帧回调新增的）
	alive := ts.events[:0]
	for _, ev := range ts.events {
		if !ev.dead {
			alive = append(alive, ev)
		}
	}
	for i := len(alive); i < len(ts.events); i++ {
		ts.events[i] = nil
	}
	ts.events = alive
}
