package service

import (
	"math"

	"gorm.io/gorm"
)

// paginate 应用 skip/limit 分页。limit <= 0 表示不限制条数，
// 但 SQLite 的 OFFSET 必须跟着 LIMIT，所以带偏移的无界查询
// 要补一个足够大的上限。
func paginate(skip, limit int) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if skip > 0 {
			q = q.Offset(skip)
			if limit <= 0 {
				limit = math.MaxInt32
			}
		}
		if limit > 0 {
			q = q.Limit(limit)
		}
		return q
	}
}
