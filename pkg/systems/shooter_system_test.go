package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/bubblepark/pkg/components"
	"github.com/decker502/bubblepark/pkg/config"
	"github.com/decker502/bubblepark/pkg/ecs"
	"github.com/decker502/bubblepark/pkg/entities"
	"github.com/decker502/bubblepark/pkg/types"
)

func newTestShooter(t *testing.T, b *testBoard) *ShooterSystem {
	t.Helper()
	cfg := config.DefaultBubbleConfig()
	shooterEntity := entities.NewShooter(b.em, cfg.Grid, cfg.Shooter, 0)
	return NewShooterSystem(b.em, b.grid, shooterEntity, rand.New(rand.NewSource(3)))
}

// TestShooterRotateClamp 旋转被限制在最大偏转角内
func TestShooterRotateClamp(t *testing.T) {
	b := newTestBoard(t)
	system := newTestShooter(t, b)

	system.Rotate(1, 0.5)
	shooter, _ := system.Shooter()
	if math.Abs(shooter.Angle-30) > 1e-9 {
		t.Errorf("Expected angle 30 after 0.5s at 60°/s, got %.2f", shooter.Angle)
	}

	system.Rotate(1, 10)
	if shooter.Angle != shooter.MaxAngle {
		t.Errorf("Expected clamp to %.0f, got %.2f", shooter.MaxAngle, shooter.Angle)
	}

	system.Rotate(-1, 10)
	if shooter.Angle != -shooter.MaxAngle {
		t.Errorf("Expected clamp to -%.0f, got %.2f", shooter.MaxAngle, shooter.Angle)
	}
}

// TestShooterRotateDeadzone 输入轴在死区内时不旋转
func TestShooterRotateDeadzone(t *testing.T) {
	b := newTestBoard(t)
	system := newTestShooter(t, b)

	system.Rotate(0.05, 1)
	shooter, _ := system.Shooter()
	if shooter.Angle != 0 {
		t.Errorf("Expected no rotation inside the deadzone, got %.2f", shooter.Angle)
	}
}

// TestShooterFireCooldown 发射后进入冷却
func TestShooterFireCooldown(t *testing.T) {
	b := newTestBoard(t)
	system := newTestShooter(t, b)

	id, ok := system.Fire()
	if !ok {
		t.Fatal("First shot should fire")
	}
	if _, ok := system.Fire(); ok {
		t.Error("Second shot should be blocked by the cooldown")
	}

	system.Update(0.5)
	if _, ok := system.Fire(); !ok {
		t.Error("Shot should fire after the cooldown")
	}

	shooter, _ := system.Shooter()
	if shooter.ShotsFired != 2 {
		t.Errorf("Expected 2 shots fired, got %d", shooter.ShotsFired)
	}

	bubble, _ := ecs.GetComponent[*components.BubbleComponent](b.em, id)
	if bubble.State != types.BubbleInFlight {
		t.Errorf("Projectile should be in flight, got %v", bubble.State)
	}
}

// TestShooterFireDirection 发射方向与角度一致
func TestShooterFireDirection(t *testing.T) {
	b := newTestBoard(t)
	system := newTestShooter(t, b)

	system.Rotate(1, 0.5) // 30°
	id, _ := system.Fire()

	vel, _ := ecs.GetComponent[*components.VelocityComponent](b.em, id)
	wantVX := 600 * math.Sin(30*math.Pi/180)
	wantVY := -600 * math.Cos(30*math.Pi/180)
	if math.Abs(vel.VX-wantVX) > 1e-6 || math.Abs(vel.VY-wantVY) > 1e-6 {
		t.Errorf("Expected velocity (%.2f,%.2f), got (%.2f,%.2f)", wantVX, wantVY, vel.VX, vel.VY)
	}
}

// TestShooterRollColorFromGrid 下一发颜色只从网格上仍存在的颜色中选择
func TestShooterRollColorFromGrid(t *testing.T) {
	b := newTestBoard(t)
	system := newTestShooter(t, b)
	b.place(t, 0, 0, 2)
	b.place(t, 1, 0, 2)

	for i := 0; i < 20; i++ {
		if c := system.RollColor(); c != 2 {
			t.Fatalf("Expected color 2, got %d", c)
		}
	}
}

// TestShooterRollColorEmptyGrid 网格为空时使用完整调色板
func TestShooterRollColorEmptyGrid(t *testing.T) {
	b := newTestBoard(t)
	system := newTestShooter(t, b)

	for i := 0; i < 20; i++ {
		if c := system.RollColor(); c < 0 || int(c) >= b.grid.Config().ColorCount {
			t.Fatalf("Color %d outside palette", c)
		}
	}
}
