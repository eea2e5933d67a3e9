package nets

import (
	"github.com/reusee/clbridge/configs"
	"github.com/reusee/clbridge/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
