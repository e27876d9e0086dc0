package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
// 缴费等并发写入在 Repository 层通过 version 列检测到丢失更新时返回
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
