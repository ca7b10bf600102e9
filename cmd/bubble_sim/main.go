// cmd/bubble_sim/main.go
// 无界面的泡泡模拟工具：以固定步长连续发射泡泡并输出统计
//
// 用法：
//   go run ./cmd/bubble_sim --shots=200 --seed=42

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/decker502/bubblepark/pkg/config"
	"github.com/decker502/bubblepark/pkg/game"
)

var (
	configPath = flag.String("config", "", "配置文件路径（默认使用内置默认值）")
	shots      = flag.Int("shots", 100, "发射次数")
	seed       = flag.Int64("seed", 1, "随机种子")
	verbose    = flag.Bool("verbose", false, "详细日志")
	maxFrames  = flag.Int("max-frames", 600, "单次发射最多模拟的帧数")
)

const frameTime = 1.0 / 60.0

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultBubbleConfig()
	if *configPath != "" {
		loaded, err := config.LoadBubbleConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	report, err := run(cfg, *shots, *seed, *maxFrames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "模拟失败: %v\n", err)
		os.Exit(1)
	}
	report.print(os.Stdout)
}

// simReport 模拟结果
type simReport struct {
	Shots      int
	Fired      int
	Unsettled  int
	Session    string
	Score      game.ScoreStats
	Counters   game.SessionStats
	Remaining  int
	StalePrune int
}

func (r simReport) print(w io.Writer) {
	fmt.Fprintf(w, "session      %s\n", r.Session)
	fmt.Fprintf(w, "shots        %d fired / %d requested (%d never settled)\n", r.Fired, r.Shots, r.Unsettled)
	fmt.Fprintf(w, "settles      %d (%d starved)\n", r.Counters.Settles, r.Counters.Starved)
	fmt.Fprintf(w, "score        %d\n", r.Score.Score)
	fmt.Fprintf(w, "matches      %d (%d bubbles, largest %d)\n", r.Score.Matches, r.Score.Cleared, r.Score.LargestMatch)
	fmt.Fprintf(w, "fallen       %d\n", r.Score.Fallen)
	fmt.Fprintf(w, "grids        %d cleared\n", r.Score.GridsCleared)
	fmt.Fprintf(w, "remaining    %d bubbles\n", r.Remaining)
	fmt.Fprintf(w, "stale pruned %d\n", r.StalePrune)
	fmt.Fprintf(w, "sim time     %.1fs (%d frames)\n", r.Counters.Duration, r.Counters.Frames)
}

// run 连续发射 shots 次，每次随机选择角度并等待泡泡固定
func run(cfg *config.BubbleConfig, shots int, seed int64, maxFrames int) (simReport, error) {
	session, err := game.NewBubbleSession(cfg, seed)
	if err != nil {
		return simReport{}, err
	}
	aimRng := rand.New(rand.NewSource(seed + 1))
	report := simReport{Shots: shots}

	for i := 0; i < shots; i++ {
		shooter, ok := session.Shooter()
		if !ok {
			return report, fmt.Errorf("session has no shooter")
		}
		shooter.Angle = (aimRng.Float64()*2 - 1) * shooter.MaxAngle

		// 冷却或重新生成期间先推进时间
		fired := false
		for frame := 0; frame < maxFrames && !fired; frame++ {
			if _, fired = session.Fire(); !fired {
				session.Update(frameTime)
			}
		}
		if !fired {
			continue
		}
		report.Fired++

		settled := false
		for frame := 0; frame < maxFrames && !settled; frame++ {
			for _, r := range session.Update(frameTime) {
				if !r.Ignored {
					settled = true
				}
			}
		}
		if !settled {
			report.Unsettled++
		}
	}

	report.Session = session.Score().SessionID()
	report.Score = session.Score().Stats()
	report.Counters = session.Stats()
	report.Remaining = session.Grid().SettledCount()
	report.StalePrune = session.Grid().StalePrunedCount()
	return report, nil
}
