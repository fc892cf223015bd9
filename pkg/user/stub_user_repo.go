package user

import (
	"context"
	"strings"
)

type StubUserRepo struct {
	nextId int
	data   map[int]User
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{
		nextId: 0,
		data:   map[int]User{},
	}
}

func (s *StubUserRepo) CreateUser(ctx context.Context, user User) (int, error) {
	s.nextId++
	user.Id = s.nextId
	s.data[user.Id] = user
	return user.Id, nil
}

func (s *StubUserRepo) GetUser(ctx context.Context, id int) (User, error) {
	u, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *StubUserRepo) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, u := range s.data {
		if u.Uid == uid {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) GetAllUsers(ctx context.Context) ([]User, error) {
	users := make([]User, 0, len(s.data))
	for id := 1; id <= s.nextId; id++ {
		if u, ok := s.data[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *StubUserRepo) GetActiveUsers(ctx context.Context) ([]User, error) {
	all, _ := s.GetAllUsers(ctx)
	users := make([]User, 0, len(all))
	for _, u := range all {
		if u.Active {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *StubUserRepo) GetDirectReports(ctx context.Context, managerId int) ([]User, error) {
	all, _ := s.GetAllUsers(ctx)
	users := make([]User, 0, len(all))
	for _, u := range all {
		if u.ManagerId == managerId {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *StubUserRepo) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	if _, ok := s.data[userId]; !ok {
		return User{}, ErrUserNotFound
	}
	user.Id = userId
	s.data[userId] = user
	return user, nil
}

func (s *StubUserRepo) DeleteUser(ctx context.Context, id int) error {
	if _, ok := s.data[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *StubUserRepo) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	for _, u := range s.data {
		if strings.EqualFold(u.Username, username) {
			return false, nil
		}
	}
	return true, nil
}

func (s *StubUserRepo) Cleanup() {
	s.data = map[int]User{}
	s.nextId = 0
}
