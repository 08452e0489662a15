package domain

import "time"

// AuditRecord 的写入失败只记录日志，绝不影响主操作
type AuditRecord struct {
	ID        int64     `json:"id"`
	ActorID   int64     `json:"actorID"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Detail    any       `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}
