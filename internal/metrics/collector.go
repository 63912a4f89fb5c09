package metrics

import (
	"context"
	"time"
)

// PatchCounter 本地补丁计数来源
type PatchCounter interface {
	PendingPatchCount() int
}

// Collector 指标收集器
// 定期把案件缓存的未对账补丁数写入 gauge
type Collector struct {
	source   PatchCounter
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewCollector 创建指标收集器
func NewCollector(source PatchCounter, interval time.Duration) *Collector {
	ctx, cancel := context.WithCancel(context.Background())
	return &Collector{
		source:   source,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start 启动指标收集器
func (c *Collector) Start() {
	go c.collect()
}

// Stop 停止指标收集器
func (c *Collector) Stop() {
	c.cancel()
	<-c.done
}

// collect 定期收集指标
func (c *Collector) collect() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			UpdatePendingLocalPatches(c.source.PendingPatchCount())
		}
	}
}
