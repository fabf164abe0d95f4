package accounts

import "github.com/mauv0809/pelada-pro/internal/pelada"

// MockStore is a configurable spy implementation of UserStore for tests.
type MockStore struct {
	LoadFunc         func() error
	UsersFunc        func() []pelada.UserAccount
	GetFunc          func(id string) (pelada.UserAccount, error)
	AddFunc          func(user pelada.UserAccount) (pelada.UserAccount, error)
	DeleteFunc       func(id string) error
	AuthenticateFunc func(email, password string) (pelada.UserAccount, error)

	// Call records
	AddCalls    []pelada.UserAccount
	DeleteCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Load() error {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return nil
}

func (m *MockStore) Users() []pelada.UserAccount {
	if m.UsersFunc != nil {
		return m.UsersFunc()
	}
	return nil
}

func (m *MockStore) Get(id string) (pelada.UserAccount, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return pelada.UserAccount{}, ErrUserNotFound
}

func (m *MockStore) Add(user pelada.UserAccount) (pelada.UserAccount, error) {
	m.AddCalls = append(m.AddCalls, user)
	if m.AddFunc != nil {
		return m.AddFunc(user)
	}
	return user, nil
}

func (m *MockStore) Delete(id string) error {
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func (m *MockStore) Authenticate(email, password string) (pelada.UserAccount, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(email, password)
	}
	return pelada.UserAccount{}, pelada.ErrUnauthorized
}
