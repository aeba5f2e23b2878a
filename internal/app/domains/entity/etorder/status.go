package etorder

// Status 订单状态
type Status string

const (
	StatusPendiente  Status = "pendiente"  // 初始状态，等待付款凭证审核
	StatusVerificado Status = "verificado" // 付款已核实
	StatusCompletado Status = "completado" // 已交付（终态）
	StatusAnulado    Status = "anulado"    // 已取消（终态）
)

// AllStatuses 全部状态，按生命周期顺序
var AllStatuses = []Status{StatusPendiente, StatusVerificado, StatusCompletado, StatusAnulado}

// transitions 允许的状态迁移表
// completado 与 anulado 为终态，不允许任何迁移
var transitions = map[Status][]Status{
	StatusPendiente:  {StatusVerificado, StatusAnulado},
	StatusVerificado: {StatusCompletado, StatusAnulado},
	StatusCompletado: nil,
	StatusAnulado:    nil,
}

// ParseStatus 解析状态字符串
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	_, ok := transitions[st]
	return st, ok
}

// Valid 是否为已知状态
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal 是否为终态
func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransition 判断 from → to 是否在迁移表中
// 同状态迁移不在表中，由调用方按 no-op 处理
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedNext 返回当前状态可迁移到的状态
func AllowedNext(from Status) []Status {
	next := transitions[from]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}
