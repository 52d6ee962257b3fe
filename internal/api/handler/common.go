package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径里的数字 ID，非法输入返回 0
func pathID(c *gin.Context, name string) uint64 {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
