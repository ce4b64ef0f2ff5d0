package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	mu sync.Mutex

	LoginRet    *client.LoginResponse
	LoginErr    error
	RegisterRet *client.MessageResponse
	RegisterErr error
	ConfirmRet  *client.MessageResponse
	ConfirmErr  error

	Users     []models.User
	ListErr   error
	ListCalls int
	// ListGate, when set, blocks ListUsers until it is closed.
	ListGate chan struct{}

	UpdateErr       error
	DeleteErr       error
	UnverifiedRet   *client.DeleteUnverifiedResponse
	UnverifiedErr   error
	UpdateRequests  []client.UpdateUsersRequest
	DeleteRequests  []client.DeleteUsersRequest
	UnverifiedCalls int

	LastLogin    client.LoginRequest
	LastRegister client.RegisterRequest
	LastConfirm  string
	LoginCalls   int
}

func (f *fakeClient) Login(_ context.Context, req client.LoginRequest) (*client.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	f.LastLogin = req
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if f.LoginRet == nil {
		return &client.LoginResponse{}, nil
	}
	return f.LoginRet, nil
}

func (f *fakeClient) Register(_ context.Context, req client.RegisterRequest) (*client.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastRegister = req
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	if f.RegisterRet == nil {
		return &client.MessageResponse{}, nil
	}
	return f.RegisterRet, nil
}

func (f *fakeClient) ConfirmEmail(_ context.Context, token string) (*client.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastConfirm = token
	if f.ConfirmErr != nil {
		return nil, f.ConfirmErr
	}
	if f.ConfirmRet == nil {
		return &client.MessageResponse{}, nil
	}
	return f.ConfirmRet, nil
}

func (f *fakeClient) ListUsers(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	f.ListCalls++
	gate := f.ListGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.User, len(f.Users))
	copy(out, f.Users)
	return out, nil
}

func (f *fakeClient) UpdateUsers(_ context.Context, req client.UpdateUsersRequest) (*client.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateRequests = append(f.UpdateRequests, req)
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	for i := range f.Users {
		for _, id := range req.IDs {
			if f.Users[i].ID == id {
				f.Users[i].Status = models.Status(req.Status)
			}
		}
	}
	return &client.MessageResponse{Message: "Users updated"}, nil
}

func (f *fakeClient) DeleteUsers(_ context.Context, req client.DeleteUsersRequest) (*client.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteRequests = append(f.DeleteRequests, req)
	if f.DeleteErr != nil {
		return nil, f.DeleteErr
	}
	kept := f.Users[:0]
	for _, u := range f.Users {
		drop := false
		for _, id := range req.IDs {
			if u.ID == id {
				drop = true
			}
		}
		if !drop {
			kept = append(kept, u)
		}
	}
	f.Users = kept
	return &client.MessageResponse{Message: "Users deleted"}, nil
}

func (f *fakeClient) DeleteUnverified(_ context.Context) (*client.DeleteUnverifiedResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UnverifiedCalls++
	if f.UnverifiedErr != nil {
		return nil, f.UnverifiedErr
	}
	if f.UnverifiedRet != nil {
		return f.UnverifiedRet, nil
	}
	return &client.DeleteUnverifiedResponse{Message: "No unverified users found", Count: 0}, nil
}
