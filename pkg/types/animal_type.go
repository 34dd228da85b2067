// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// AnimalKind 定义可收集动物的种类
type AnimalKind int

const (
	// AnimalUnknown 未知动物
	AnimalUnknown AnimalKind = iota
	// AnimalChicken 小鸡：体型小、走得快、更爱乱跑
	AnimalChicken
	// AnimalCow 奶牛：体型大、走得慢、更爱发呆
	AnimalCow
)

// String 返回动物种类的字符串表示（同时也是配置文件和精灵表的键名）
func (k AnimalKind) String() string {
	switch k {
	case AnimalChicken:
		return "chicken"
	case AnimalCow:
		return "cow"
	default:
		return "unknown"
	}
}

// ParseAnimalKind 将配置中的键名解析为动物种类
func ParseAnimalKind(s string) (AnimalKind, error) {
	switch s {
	case "chicken":
		return AnimalChicken, nil
	case "cow":
		return AnimalCow, nil
	default:
		return AnimalUnknown, fmt.Errorf("unknown animal kind %q", s)
	}
}
