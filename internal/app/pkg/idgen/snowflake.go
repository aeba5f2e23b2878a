package idgen

import (
	"sync"
	"time"
)

// Generator 整型ID生成器
type Generator interface {
	NextID() int64
}

// SnowflakeIDGenerator 简化的雪花ID生成器
// ID格式: 秒级时间戳偏移 + 节点ID(2位) + 序列号(3位)
type SnowflakeIDGenerator struct {
	mu       sync.Mutex
	epoch    int64 // 起始时间戳 (2025-01-01 00:00:00 UTC)
	nodeID   int64 // 节点ID (0-99)
	sequence int64 // 序列号 (0-999)
	lastTime int64 // 上次生成ID的秒级时间戳
}

const (
	maxNodeID   = 99  // 最大节点ID
	maxSequence = 999 // 每秒最大序列号
)

// NewSnowflakeIDGenerator 创建ID生成器
// nodeID 超出 0-99 时回退为 0
func NewSnowflakeIDGenerator(nodeID int64) *SnowflakeIDGenerator {
	if nodeID < 0 || nodeID > maxNodeID {
		nodeID = 0
	}

	return &SnowflakeIDGenerator{
		epoch:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
		nodeID: nodeID,
	}
}

// NextID 生成下一个ID，单调递增
func (g *SnowflakeIDGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().Unix()
	if now < g.lastTime {
		// 时钟回拨，沿用上次时间戳
		now = g.lastTime
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) % (maxSequence + 1)
		if g.sequence == 0 {
			// 序列号用尽，等待下一秒
			for now <= g.lastTime {
				time.Sleep(time.Millisecond)
				now = time.Now().Unix()
			}
		}
	} else {
		g.sequence = 0
	}

	g.lastTime = now

	// 时间偏移 * 100000 + 节点ID * 1000 + 序列号
	return (now-g.epoch)*100000 + g.nodeID*1000 + g.sequence
}

// 全局默认ID生成器（节点ID为1）
var defaultGenerator = NewSnowflakeIDGenerator(1)

// GenerateID 生成ID（使用默认生成器）
func GenerateID() int64 {
	return defaultGenerator.NextID()
}
