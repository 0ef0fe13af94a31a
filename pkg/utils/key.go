package utils

import (
	"fmt"
	"path"
	"strings"
)

// ObjectKey 生成 {prefix}/{user}/{id}_{filename}，filename 只保留最后一段
func ObjectKey(prefix, userID, id, filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return fmt.Sprintf("%s/%s/%s_%s", prefix, userID, id, name)
}
