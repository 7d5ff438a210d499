package testutil

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository.
// It also records the profiles created alongside users so tests can
// assert the one-profile-per-user invariant.
type MockUserRepository struct {
	Users    map[uuid.UUID]*domain.User
	Profiles map[uuid.UUID]*domain.Profile
	NextID   int32
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:    make(map[uuid.UUID]*domain.User),
		Profiles: make(map[uuid.UUID]*domain.Profile),
		NextID:   1,
	}
}

// CreateWithProfile creates a user and its profile together
func (m *MockUserRepository) CreateWithProfile(user *domain.User) (*domain.User, error) {
	for _, existing := range m.Users {
		if existing.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.ID] = user
	m.Profiles[user.ID] = &domain.Profile{
		ID:        m.NextID,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
	m.NextID++
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByUsername retrieves a user by username
func (m *MockUserRepository) GetByUsername(username string) (*domain.User, error) {
	for _, user := range m.Users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// UpdateEmail updates a user's email
func (m *MockUserRepository) UpdateEmail(id uuid.UUID, email string) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, existing := range m.Users {
		if existing.ID != id && existing.Email == email {
			return nil, domain.ErrEmailTaken
		}
	}
	user.Email = email
	if profile, ok := m.Profiles[id]; ok {
		profile.Email = email
	}
	return user, nil
}

// MockProfileRepository is a mock implementation of
// domain.ProfileRepository backed by a MockUserRepository
type MockProfileRepository struct {
	Users *MockUserRepository
}

// NewMockProfileRepository creates a MockProfileRepository sharing the
// given user repository's state
func NewMockProfileRepository(users *MockUserRepository) *MockProfileRepository {
	return &MockProfileRepository{Users: users}
}

// GetByUserID retrieves a profile by its owner
func (m *MockProfileRepository) GetByUserID(userID uuid.UUID) (*domain.Profile, error) {
	if profile, ok := m.Users.Profiles[userID]; ok {
		return profile, nil
	}
	return nil, domain.ErrProfileNotFound
}

// GetAll returns every profile
func (m *MockProfileRepository) GetAll() ([]*domain.Profile, error) {
	profiles := make([]*domain.Profile, 0, len(m.Users.Profiles))
	for _, profile := range m.Users.Profiles {
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles, nil
}

// MockCategoryRepository is a mock implementation of
// domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	NextID     int32
	// Transactions, when set, gets its category references nulled on
	// delete, mirroring the ON DELETE SET NULL constraint.
	Transactions *MockTransactionRepository
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		NextID:     1,
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	category.ID = m.NextID
	m.NextID++
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category scoped to its owner
func (m *MockCategoryRepository) GetByID(userID uuid.UUID, id int32) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

// GetByUser retrieves a user's categories
func (m *MockCategoryRepository) GetByUser(userID uuid.UUID) ([]*domain.Category, error) {
	var categories []*domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// Delete removes a category and nulls references on transactions
func (m *MockCategoryRepository) Delete(userID uuid.UUID, id int32) error {
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	if m.Transactions != nil {
		for _, tx := range m.Transactions.Transactions {
			if tx.CategoryID != nil && *tx.CategoryID == id {
				tx.CategoryID = nil
				tx.CategoryName = nil
			}
		}
	}
	return nil
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository with in-memory aggregation
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	NextID       int32
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		NextID:       1,
	}
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(tx *domain.Transaction) {
	if tx.ID == 0 {
		tx.ID = m.NextID
	}
	if tx.ID >= m.NextID {
		m.NextID = tx.ID + 1
	}
	m.Transactions[tx.ID] = tx
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	tx.ID = m.NextID
	m.NextID++
	m.Transactions[tx.ID] = tx
	return tx, nil
}

// GetByUser retrieves a user's transactions with filters and pagination
func (m *MockTransactionRepository) GetByUser(userID uuid.UUID, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
			if pageSize > domain.MaxPageSize {
				pageSize = domain.MaxPageSize
			}
		}
	}

	var matched []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.UserID != userID {
			continue
		}
		if filters != nil {
			if filters.CategoryID != nil && (tx.CategoryID == nil || *tx.CategoryID != *filters.CategoryID) {
				continue
			}
			if filters.Type != nil && tx.Type != *filters.Type {
				continue
			}
			if filters.StartDate != nil && tx.Date.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && tx.Date.After(*filters.EndDate) {
				continue
			}
		}
		matched = append(matched, tx)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	totalItems := int64(len(matched))
	start := int(page-1) * int(pageSize)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + int(pageSize)
	if end > len(matched) {
		end = len(matched)
	}

	totalPages := int32(totalItems / int64(pageSize))
	if totalItems%int64(pageSize) > 0 {
		totalPages++
	}

	return &domain.PaginatedTransactions{
		Data:       matched[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// GetByDate retrieves a user's transactions on one date
func (m *MockTransactionRepository) GetByDate(userID uuid.UUID, date time.Time) ([]*domain.Transaction, error) {
	var matched []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.UserID == userID && sameDay(tx.Date, date) {
			matched = append(matched, tx)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

// SumByTypeAndDate sums one type's amounts on one date
func (m *MockTransactionRepository) SumByTypeAndDate(userID uuid.UUID, date time.Time, txType domain.TransactionType) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range m.Transactions {
		if tx.UserID == userID && tx.Type == txType && sameDay(tx.Date, date) {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

// SumExpenses sums all of a user's expense transactions
func (m *MockTransactionRepository) SumExpenses(userID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range m.Transactions {
		if tx.UserID == userID && tx.Type == domain.TransactionTypeExpense {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

// GetMonthlySummaries returns per-month totals, most recent first
func (m *MockTransactionRepository) GetMonthlySummaries(userID uuid.UUID) ([]*domain.MonthlySummaryRow, error) {
	groups := make(map[[2]int]*domain.MonthlySummaryRow)
	for _, tx := range m.Transactions {
		if tx.UserID != userID {
			continue
		}
		k := [2]int{tx.Date.Year(), int(tx.Date.Month())}
		row, ok := groups[k]
		if !ok {
			row = &domain.MonthlySummaryRow{
				Year:          k[0],
				Month:         k[1],
				TotalIncome:   decimal.Zero,
				TotalExpenses: decimal.Zero,
			}
			groups[k] = row
		}
		switch tx.Type {
		case domain.TransactionTypeIncome:
			row.TotalIncome = row.TotalIncome.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			row.TotalExpenses = row.TotalExpenses.Add(tx.Amount)
		}
	}

	rows := make([]*domain.MonthlySummaryRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year > rows[j].Year
		}
		return rows[i].Month > rows[j].Month
	})
	return rows, nil
}

// GetAnnualCategorySummaries returns per-category totals for one year
func (m *MockTransactionRepository) GetAnnualCategorySummaries(userID uuid.UUID, year int) ([]*domain.CategorySummaryRow, error) {
	groups := make(map[string]*domain.CategorySummaryRow)
	for _, tx := range m.Transactions {
		if tx.UserID != userID || tx.Date.Year() != year {
			continue
		}
		k := ""
		if tx.CategoryName != nil {
			k = *tx.CategoryName
		}
		row, ok := groups[k]
		if !ok {
			row = &domain.CategorySummaryRow{
				CategoryName:  tx.CategoryName,
				TotalIncome:   decimal.Zero,
				TotalExpenses: decimal.Zero,
			}
			groups[k] = row
		}
		switch tx.Type {
		case domain.TransactionTypeIncome:
			row.TotalIncome = row.TotalIncome.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			row.TotalExpenses = row.TotalExpenses.Add(tx.Amount)
		}
	}

	rows := make([]*domain.CategorySummaryRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TotalExpenses.GreaterThan(rows[j].TotalExpenses)
	})
	return rows, nil
}

// MockCalendarRepository is a mock implementation of
// domain.CalendarRepository
type MockCalendarRepository struct {
	Calendars map[int32]*domain.Calendar
	NextID    int32
	// CreateErr, when set, fails CreateWithCells without storing rows
	CreateErr error
}

// NewMockCalendarRepository creates a new MockCalendarRepository
func NewMockCalendarRepository() *MockCalendarRepository {
	return &MockCalendarRepository{
		Calendars: make(map[int32]*domain.Calendar),
		NextID:    1,
	}
}

// CreateWithCells creates a calendar with its cells
func (m *MockCalendarRepository) CreateWithCells(calendar *domain.Calendar, dates []time.Time) (*domain.Calendar, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	calendar.ID = m.NextID
	m.NextID++
	calendar.Cells = make([]*domain.CalendarCell, len(dates))
	for i, date := range dates {
		calendar.Cells[i] = &domain.CalendarCell{
			ID:            m.NextID,
			CalendarID:    calendar.ID,
			Date:          date,
			TotalExpenses: decimal.Zero,
		}
		m.NextID++
	}
	m.Calendars[calendar.ID] = calendar
	return calendar, nil
}

// GetByID retrieves a calendar scoped to its owner
func (m *MockCalendarRepository) GetByID(userID uuid.UUID, id int32) (*domain.Calendar, error) {
	calendar, ok := m.Calendars[id]
	if !ok || calendar.UserID != userID {
		return nil, domain.ErrCalendarNotFound
	}
	return calendar, nil
}

// GetByUser retrieves a user's calendars
func (m *MockCalendarRepository) GetByUser(userID uuid.UUID) ([]*domain.Calendar, error) {
	var calendars []*domain.Calendar
	for _, calendar := range m.Calendars {
		if calendar.UserID == userID {
			calendars = append(calendars, calendar)
		}
	}
	sort.Slice(calendars, func(i, j int) bool { return calendars[i].ID < calendars[j].ID })
	return calendars, nil
}

// GetCellByDate retrieves one cell of a calendar
func (m *MockCalendarRepository) GetCellByDate(calendarID int32, date time.Time) (*domain.CalendarCell, error) {
	calendar, ok := m.Calendars[calendarID]
	if !ok {
		return nil, domain.ErrCellNotFound
	}
	for _, cell := range calendar.Cells {
		if sameDay(cell.Date, date) {
			return cell, nil
		}
	}
	return nil, domain.ErrCellNotFound
}

// UpdateCellTotal overwrites a cell's cached total
func (m *MockCalendarRepository) UpdateCellTotal(cellID int32, total decimal.Decimal) (*domain.CalendarCell, error) {
	for _, calendar := range m.Calendars {
		for _, cell := range calendar.Cells {
			if cell.ID == cellID {
				cell.TotalExpenses = total
				return cell, nil
			}
		}
	}
	return nil, domain.ErrCellNotFound
}

// MockBillRepository is a mock implementation of domain.BillRepository
type MockBillRepository struct {
	Bills  map[int32]*domain.BillDue
	NextID int32
}

// NewMockBillRepository creates a new MockBillRepository
func NewMockBillRepository() *MockBillRepository {
	return &MockBillRepository{
		Bills:  make(map[int32]*domain.BillDue),
		NextID: 1,
	}
}

// AddBill adds a bill to the mock repository (helper for tests)
func (m *MockBillRepository) AddBill(bill *domain.BillDue) {
	if bill.ID == 0 {
		bill.ID = m.NextID
	}
	if bill.ID >= m.NextID {
		m.NextID = bill.ID + 1
	}
	m.Bills[bill.ID] = bill
}

// Create creates a new bill
func (m *MockBillRepository) Create(bill *domain.BillDue) (*domain.BillDue, error) {
	bill.ID = m.NextID
	m.NextID++
	bill.IsPaid = false
	m.Bills[bill.ID] = bill
	return bill, nil
}

// GetByUser retrieves a user's bills ordered by due date ascending
func (m *MockBillRepository) GetByUser(userID uuid.UUID) ([]*domain.BillDue, error) {
	var bills []*domain.BillDue
	for _, bill := range m.Bills {
		if bill.UserID == userID {
			bills = append(bills, bill)
		}
	}
	sort.Slice(bills, func(i, j int) bool {
		if !bills[i].DueDate.Equal(bills[j].DueDate) {
			return bills[i].DueDate.Before(bills[j].DueDate)
		}
		return bills[i].ID < bills[j].ID
	})
	return bills, nil
}

// GetByDueDate retrieves a user's bills due on one date
func (m *MockBillRepository) GetByDueDate(userID uuid.UUID, date time.Time) ([]*domain.BillDue, error) {
	var bills []*domain.BillDue
	for _, bill := range m.Bills {
		if bill.UserID == userID && sameDay(bill.DueDate, date) {
			bills = append(bills, bill)
		}
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].ID < bills[j].ID })
	return bills, nil
}

// TogglePaid flips a bill's paid flag
func (m *MockBillRepository) TogglePaid(userID uuid.UUID, id int32) (*domain.BillDue, error) {
	bill, ok := m.Bills[id]
	if !ok || bill.UserID != userID {
		return nil, domain.ErrBillNotFound
	}
	bill.IsPaid = !bill.IsPaid
	return bill, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
