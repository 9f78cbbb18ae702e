package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smartkiosk/console/internal/accounts"
	"github.com/smartkiosk/console/internal/gateway"
	"github.com/smartkiosk/console/internal/http/api"
	"github.com/smartkiosk/console/internal/http/api/admin/packets"
	"github.com/smartkiosk/console/internal/model"
)

type usersController struct {
	dir *accounts.Directory
}

// UsersModule mounts all authenticated /users endpoints.
func UsersModule(dir *accounts.Directory) api.Module {
	ctl := &usersController{dir: dir}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/users", ctl.getView)
		c.POST("/users", ctl.createUser)
		c.PUT("/users/:id", ctl.updateUser)
		c.DELETE("/users/:id", ctl.removeUser)
	})
}

// GET /api/admin/users?search=&page=
func (u *usersController) getView(ctx *gin.Context, _ string) (any, *api.APIError) {
	if err := u.dir.Load(ctx.Request.Context()); err != nil {
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "kiosk service unreachable"}
	}

	u.dir.Search(ctx.Query("search"))
	if raw := ctx.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid page"}
		}
		u.dir.SetPage(n)
	}

	view := u.dir.View()
	if view.TotalPages > 0 && view.Page > view.TotalPages {
		u.dir.SetPage(view.TotalPages)
		view = u.dir.View()
	}
	return mapUsersView(view), nil
}

// POST /api/admin/users
func (u *usersController) createUser(ctx *gin.Context, _ string) (any, *api.APIError) {
	in, apiErr := bindUserInput(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if apiErr := mapAccountError(u.dir.Create(ctx.Request.Context(), in)); apiErr != nil {
		return nil, apiErr
	}
	return mapUsersView(u.dir.View()), nil
}

// PUT /api/admin/users/:id
func (u *usersController) updateUser(ctx *gin.Context, _ string) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	in, apiErr := bindUserInput(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if apiErr := mapAccountError(u.dir.Update(ctx.Request.Context(), id, in)); apiErr != nil {
		return nil, apiErr
	}
	return mapUsersView(u.dir.View()), nil
}

// DELETE /api/admin/users/:id
func (u *usersController) removeUser(ctx *gin.Context, _ string) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if apiErr := mapAccountError(u.dir.Remove(ctx.Request.Context(), id)); apiErr != nil {
		return nil, apiErr
	}
	return mapUsersView(u.dir.View()), nil
}

func bindUserInput(ctx *gin.Context) (accounts.Input, *api.APIError) {
	var req packets.UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return accounts.Input{}, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	return accounts.Input{
		Name:     req.Name,
		Email:    req.Email,
		TaxID:    req.TaxID,
		Phone:    req.Phone,
		Password: req.Password,
		Active:   req.Active,
	}, nil
}

func mapAccountError(err error) *api.APIError {
	if err == nil {
		return nil
	}
	if errors.Is(err, accounts.ErrValidation) {
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if gateway.IsTransport(err) {
		return &api.APIError{Code: http.StatusBadGateway, Message: "kiosk service unreachable"}
	}
	return &api.APIError{Code: http.StatusInternalServerError, Message: "could not save account"}
}

func mapUsersView(v accounts.View) packets.UsersViewResponse {
	users := make([]packets.UserResponse, len(v.Users))
	for i, usr := range v.Users {
		users[i] = mapUser(usr)
	}
	return packets.UsersViewResponse{
		Users:         users,
		Page:          v.Page,
		TotalPages:    v.TotalPages,
		TotalFiltered: v.TotalFiltered,
	}
}

func mapUser(u model.User) packets.UserResponse {
	var phone string
	if u.Phone != nil {
		phone = *u.Phone
	}
	return packets.UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		TaxID:  u.TaxID,
		Phone:  phone,
		Active: u.Active,
	}
}
