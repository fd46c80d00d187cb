package main

import (
	"fmt"
	"os"

	"seoreport/internal/logger"
)

// 入口程序：
// build   读取快照并输出提示词（--save 时写入存储）
// metrics 输出派生指标表
// serve   启动 HTTP 服务
// chart   为已保存记录生成图表
func main() {
	defer logger.Sync()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
