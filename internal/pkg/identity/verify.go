package identity

import "strings"

// VerifyResult id 校验结果。校验永不报错，只给出否定结论。
type VerifyResult struct {
	IsValid  bool
	Category string
	ID       string
}

func invalid() VerifyResult {
	return VerifyResult{IsValid: false, Category: "", ID: ""}
}

// VerifyID 校验实体 id：统一转大写，首字符决定类别，
// 再按类别的总长度区间检查（话题 id 内容寻址，不限长度）。
func VerifyID(raw string) VerifyResult {
	if raw == "" {
		return invalid()
	}
	ref := strings.ToUpper(raw)
	category, ok := categoryByPrefix[ref[0]]
	if !ok {
		return invalid()
	}
	if category == CategoryTopic {
		return VerifyResult{IsValid: true, Category: category, ID: ref}
	}
	spec := idSpecs[category]
	if len(ref) < spec.minLength || len(ref) > spec.maxLength {
		return invalid()
	}
	for i := 1; i < len(ref); i++ {
		c := ref[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z') {
			return invalid()
		}
	}
	return VerifyResult{IsValid: true, Category: category, ID: ref}
}
