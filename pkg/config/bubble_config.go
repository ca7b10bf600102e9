package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置内容不合法
// 调用者可使用 errors.Is 区分「文件读取失败」与「配置校验失败」
var ErrInvalidConfig = errors.New("invalid bubble config")

// BubbleConfig 泡泡网格与发射器配置
// 在网格创建时固定，运行期间不再修改
type BubbleConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Shooter ShooterConfig `yaml:"shooter"`
	Screen  ScreenConfig  `yaml:"screen"`
}

// GridConfig 网格几何与计分规则
type GridConfig struct {
	Rows               int     `yaml:"rows"`               // 初始填充行数，默认 6
	Columns            int     `yaml:"columns"`            // 每行格子数，默认 8
	MaxRows            int     `yaml:"maxRows"`            // 网格最大行数（泡泡可以落到的最深一行），默认 rows+6
	Spacing            float64 `yaml:"spacing"`            // 同行格子中心距（像素），默认 40
	RowHeight          float64 `yaml:"rowHeight"`          // 行间距（像素），默认等于 spacing
	ColorCount         int     `yaml:"colorCount"`         // 调色板大小，默认 4
	MinMatchSize       int     `yaml:"minMatchSize"`       // 同色消除最少数量，默认 3
	PointsPerBubble    int     `yaml:"pointsPerBubble"`    // 每个消除泡泡的分数，默认 10
	FallBonusPerBubble int     `yaml:"fallBonusPerBubble"` // 每个掉落泡泡的奖励分，默认 20
	RegenerateDelay    float64 `yaml:"regenerateDelay"`    // 网格清空后重新生成的延迟（秒），默认 0.5
	ManualRegenerate   bool    `yaml:"manualRegenerate"`   // 为 true 时网格清空后不自动重新生成
}

// ShooterConfig 发射器参数
type ShooterConfig struct {
	MaxAngle      float64 `yaml:"maxAngle"`      // 最大偏转角（度），默认 45
	RotationSpeed float64 `yaml:"rotationSpeed"` // 旋转速度（度/秒），默认 60
	Cooldown      float64 `yaml:"cooldown"`      // 发射冷却（秒），默认 0.3
	ShotSpeed     float64 `yaml:"shotSpeed"`     // 泡泡飞行速度（像素/秒），默认 600
	MaxLifetime   float64 `yaml:"maxLifetime"`   // 飞行中泡泡的最长存活时间（秒），默认 10
	AimLength     float64 `yaml:"aimLength"`     // 瞄准线长度（像素），默认 400
}

// ScreenConfig 屏幕布局
type ScreenConfig struct {
	Width   int     `yaml:"width"`   // 逻辑屏幕宽度，默认 480
	Height  int     `yaml:"height"`  // 逻辑屏幕高度，默认 720
	OriginX float64 `yaml:"originX"` // 格子 (0,0) 中心的屏幕X，默认 spacing
	OriginY float64 `yaml:"originY"` // 格子 (0,0) 中心的屏幕Y，默认 spacing
}

// DefaultBubbleConfig 返回全部使用默认值的配置
func DefaultBubbleConfig() *BubbleConfig {
	cfg := &BubbleConfig{}
	applyBubbleDefaults(cfg)
	return cfg
}

// LoadBubbleConfig 从YAML文件加载泡泡配置
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*BubbleConfig - 应用默认值并校验后的配置
//	error - 文件读取、解析或校验失败
func LoadBubbleConfig(filepath string) (*BubbleConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bubble config file %s: %w", filepath, err)
	}

	cfg, err := ParseBubbleConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load bubble config %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseBubbleConfig 从YAML字节解析泡泡配置（用于嵌入资源）
func ParseBubbleConfig(data []byte) (*BubbleConfig, error) {
	var cfg BubbleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse bubble config YAML: %w", err)
	}

	applyBubbleDefaults(&cfg)

	if err := validateBubbleConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyBubbleDefaults 为缺失的字段设置默认值
// 默认值取自原版关卡：6 行 x 8 列，3 个同色消除，每个 10 分
func applyBubbleDefaults(cfg *BubbleConfig) {
	g := &cfg.Grid
	if g.Rows == 0 {
		g.Rows = 6
	}
	if g.Columns == 0 {
		g.Columns = 8
	}
	if g.MaxRows == 0 {
		g.MaxRows = g.Rows + 6
	}
	if g.Spacing == 0 {
		g.Spacing = 40
	}
	if g.RowHeight == 0 {
		g.RowHeight = g.Spacing
	}
	if g.ColorCount == 0 {
		g.ColorCount = 4
	}
	if g.MinMatchSize == 0 {
		g.MinMatchSize = 3
	}
	if g.PointsPerBubble == 0 {
		g.PointsPerBubble = 10
	}
	if g.FallBonusPerBubble == 0 {
		g.FallBonusPerBubble = 20
	}
	if g.RegenerateDelay == 0 {
		g.RegenerateDelay = 0.5
	}

	s := &cfg.Shooter
	if s.MaxAngle == 0 {
		s.MaxAngle = 45
	}
	if s.RotationSpeed == 0 {
		s.RotationSpeed = 60
	}
	if s.Cooldown == 0 {
		s.Cooldown = 0.3
	}
	if s.ShotSpeed == 0 {
		s.ShotSpeed = 600
	}
	if s.MaxLifetime == 0 {
		s.MaxLifetime = 10
	}
	if s.AimLength == 0 {
		s.AimLength = 400
	}

	sc := &cfg.Screen
	if sc.Width == 0 {
		sc.Width = 480
	}
	if sc.Height == 0 {
		sc.Height = 720
	}
	if sc.OriginX == 0 {
		sc.OriginX = g.Spacing
	}
	if sc.OriginY == 0 {
		sc.OriginY = g.Spacing
	}
}

// validateBubbleConfig 校验配置的合法性
func validateBubbleConfig(cfg *BubbleConfig) error {
	g := cfg.Grid
	switch {
	case g.Rows < 1:
		return fmt.Errorf("%w: rows must be at least 1, got %d", ErrInvalidConfig, g.Rows)
	case g.Columns < 1:
		return fmt.Errorf("%w: columns must be at least 1, got %d", ErrInvalidConfig, g.Columns)
	case g.MaxRows < g.Rows:
		return fmt.Errorf("%w: maxRows (%d) must not be less than rows (%d)", ErrInvalidConfig, g.MaxRows, g.Rows)
	case g.Spacing <= 0:
		return fmt.Errorf("%w: spacing must be positive, got %v", ErrInvalidConfig, g.Spacing)
	case g.RowHeight <= 0:
		return fmt.Errorf("%w: rowHeight must be positive, got %v", ErrInvalidConfig, g.RowHeight)
	case g.ColorCount < 1:
		return fmt.Errorf("%w: colorCount must be at least 1, got %d", ErrInvalidConfig, g.ColorCount)
	case g.MinMatchSize < 2:
		return fmt.Errorf("%w: minMatchSize must be at least 2, got %d", ErrInvalidConfig, g.MinMatchSize)
	case g.PointsPerBubble < 0 || g.FallBonusPerBubble < 0:
		return fmt.Errorf("%w: scores cannot be negative", ErrInvalidConfig)
	case g.RegenerateDelay < 0:
		return fmt.Errorf("%w: regenerateDelay cannot be negative, got %v", ErrInvalidConfig, g.RegenerateDelay)
	}

	s := cfg.Shooter
	switch {
	case s.MaxAngle <= 0 || s.MaxAngle >= 90:
		return fmt.Errorf("%w: shooter maxAngle must be in (0, 90), got %v", ErrInvalidConfig, s.MaxAngle)
	case s.RotationSpeed <= 0:
		return fmt.Errorf("%w: shooter rotationSpeed must be positive, got %v", ErrInvalidConfig, s.RotationSpeed)
	case s.Cooldown < 0:
		return fmt.Errorf("%w: shooter cooldown cannot be negative, got %v", ErrInvalidConfig, s.Cooldown)
	case s.ShotSpeed <= 0:
		return fmt.Errorf("%w: shooter shotSpeed must be positive, got %v", ErrInvalidConfig, s.ShotSpeed)
	case s.MaxLifetime <= 0:
		return fmt.Errorf("%w: shooter maxLifetime must be positive, got %v", ErrInvalidConfig, s.MaxLifetime)
	}

	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen size must be positive, got %dx%d", ErrInvalidConfig, cfg.Screen.Width, cfg.Screen.Height)
	}

	return nil
}

// BoardWalls 返回左右墙在网格局部坐标中的X位置
// 左墙贴着偶数行第一个泡泡的左边缘，右墙贴着奇数行最后一个泡泡的右边缘
func (g GridConfig) BoardWalls() (left, right float64) {
	left = -g.Spacing * 0.5
	right = float64(g.Columns) * g.Spacing
	return left, right
}

// LauncherPosition 返回发射点在网格局部坐标中的位置（底部居中，最深一行再下一行）
func (g GridConfig) LauncherPosition() (x, y float64) {
	left, right := g.BoardWalls()
	x = (left + right) * 0.5
	y = float64(g.MaxRows) * g.RowHeight
	return x, y
}
