package v1

import (
	"github.com/ProjectsTask/EasySwapBase/errcode"
	"github.com/ProjectsTask/EasySwapBase/xhttp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// 注册 hexaddress 校验规则, 请求体里的地址字段统一用它约束
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hexaddress", func(fl validator.FieldLevel) bool {
			return common.IsHexAddress(fl.Field().String())
		})
	}
}

// normalizeAddress 地址统一成 EIP-55 规范形式, 避免大小写不同的同一地址分裂状态
func normalizeAddress(addr string) (string, bool) {
	if !common.IsHexAddress(addr) {
		return "", false
	}
	return common.HexToAddress(addr).Hex(), true
}

// okResult 统一的成功响应包装
func okResult(c *gin.Context, res interface{}) {
	xhttp.OkJson(c, struct {
		Result interface{} `json:"result"`
	}{Result: res})
}

// errReply 引擎错误到 HTTP 错误响应的映射
func errReply(c *gin.Context, err error) {
	xhttp.Error(c, errcode.NewCustomErr(err.Error()))
}
