package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/karlseguin/chain"
	"github.com/karlseguin/chain/lru"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	undo := chain.New[string]()
	undo.Add("type a")
	typed := undo.Add("type b")
	undo.Add("type c")
	fmt.Println(undo)

	if _, err := undo.Remove(typed); err != nil {
		logger.Error("failed to drop undo step", zap.Error(err))
	}
	if _, err := undo.Remove(typed); err != nil {
		logger.Info("stale handle rejected", zap.Error(err))
	}
	last, _ := undo.RemoveLast()
	fmt.Println(last, undo)

	c := lru.New(lru.Configure[string]().MaxSize(2).ItemsToPrune(1).Logger(logger))
	c.Set("spice", "flow", time.Minute)
	c.Set("worm", "sand", time.Minute)
	c.Set("leto", "ghanima", time.Minute)
	c.SyncUpdates()
	fmt.Println(c.Get("spice"), c.Get("leto"))
	c.Stop()
}
