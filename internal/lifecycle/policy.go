package lifecycle

import "github.com/denmor86/ya-laundry/internal/models"

type edge struct {
	from models.OrderStatus
	to   models.OrderStatus
}

// основной путь заказа
var happyPath = []edge{
	{models.OrderStatusPending, models.OrderStatusConfirmed},
	{models.OrderStatusConfirmed, models.OrderStatusPickupAssigned},
	{models.OrderStatusPickupAssigned, models.OrderStatusPickedUp},
	{models.OrderStatusPickedUp, models.OrderStatusInProcess},
	{models.OrderStatusInProcess, models.OrderStatusReady},
	{models.OrderStatusReady, models.OrderStatusOutForDelivery},
	{models.OrderStatusOutForDelivery, models.OrderStatusDelivered},
}

// allowedTransitions - таблица допустимых переходов (from -> to)
var allowedTransitions = buildTransitions()

// roleEdges - переходы, которые может инициировать роль (кроме admin и отмены персоналом)
var roleEdges = []struct {
	role models.Role
	edge edge
}{
	{models.RoleStaff, edge{models.OrderStatusPending, models.OrderStatusConfirmed}},
	{models.RoleStaff, edge{models.OrderStatusConfirmed, models.OrderStatusPickupAssigned}},
	{models.RoleCourier, edge{models.OrderStatusPickupAssigned, models.OrderStatusPickedUp}},
	{models.RoleStaff, edge{models.OrderStatusPickedUp, models.OrderStatusInProcess}},
	{models.RoleStaff, edge{models.OrderStatusInProcess, models.OrderStatusReady}},
	{models.RoleStaff, edge{models.OrderStatusReady, models.OrderStatusOutForDelivery}},
	{models.RoleCourier, edge{models.OrderStatusOutForDelivery, models.OrderStatusDelivered}},
}

// permittedRoles - (from, to) -> роли, которым разрешён переход
var permittedRoles = buildPermissions()

func buildPermissions() map[edge]map[models.Role]bool {
	table := make(map[edge]map[models.Role]bool, len(roleEdges))
	for _, re := range roleEdges {
		if table[re.edge] == nil {
			table[re.edge] = map[models.Role]bool{}
		}
		table[re.edge][re.role] = true
	}
	return table
}

func buildTransitions() map[models.OrderStatus]map[models.OrderStatus]bool {
	table := make(map[models.OrderStatus]map[models.OrderStatus]bool, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		table[s] = map[models.OrderStatus]bool{}
	}
	for _, e := range happyPath {
		table[e.from][e.to] = true
	}
	// отмена возможна из любого нетерминального статуса
	for _, s := range models.OrderStatuses {
		if !s.IsTerminal() {
			table[s][models.OrderStatusCancelled] = true
		}
	}
	return table
}

// IsAllowed - есть ли пара (from -> to) в таблице переходов
func IsAllowed(from, to models.OrderStatus) bool {
	return allowedTransitions[from][to]
}

// RolePermits - может ли роль инициировать смену статуса from -> to.
// Проверка только по роли: допустимость пары и принадлежность заказа курьеру проверяются отдельно.
func RolePermits(role models.Role, from, to models.OrderStatus) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleStaff:
		if to == models.OrderStatusCancelled {
			return true
		}
		return permittedRoles[edge{from, to}][models.RoleStaff]
	case models.RoleCourier:
		return permittedRoles[edge{from, to}][models.RoleCourier]
	default:
		return false
	}
}

// NextStatuses - допустимые переходы из статуса для роли
func NextStatuses(role models.Role, from models.OrderStatus) []models.OrderStatus {
	var result []models.OrderStatus
	for _, to := range models.OrderStatuses {
		if IsAllowed(from, to) && RolePermits(role, from, to) {
			result = append(result, to)
		}
	}
	return result
}
