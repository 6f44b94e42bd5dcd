package logger

import "go.uber.org/zap"

// Init 初始化全局 zap logger。
// release 用生产配置（JSON），其余用开发配置。
func Init(mode string) error {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(l)
	return nil
}
