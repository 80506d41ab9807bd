// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/constants"
	"github.com/taibuivan/tasknest/internal/platform/ctxutil"
	"github.com/taibuivan/tasknest/internal/platform/respond"
	"github.com/taibuivan/tasknest/internal/platform/sec"
)

// PrincipalResolver turns a raw bearer token into the caller it identifies.
//
// Defined here so the middleware does not depend on the auth package; the
// auth guard satisfies it.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*sec.Principal, error)
}

// RoleChecker reports whether a principal holds one of the given roles.
type RoleChecker interface {
	RequireRole(principal *sec.Principal, roles ...sec.UserRole) error
}

// Authenticate extracts the bearer token and resolves the caller.
//
// # Flow
//  1. No Authorization header: the request proceeds as anonymous.
//  2. Malformed header: 401.
//  3. Resolution failure (revoked, invalid, unknown subject): the resolver's error.
//  4. Success: the principal and the raw token are stored in the context.
func Authenticate(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// 1. Anonymous access
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Format validation
			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, constants.BearerScheme) || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// 3. Resolution
			principal, err := resolver.ResolvePrincipal(request.Context(), token)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// 4. Context injection
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			ctx = ctxutil.WithAccessToken(ctx, token)
			notePrincipal(ctx, principal.ID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose principal holds none of roles.
//
// It implies [RequireAuth]. The checker decides, so the 403 body is the same
// one the services return.
func RequireRole(checker RoleChecker, roles ...sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			// 1. Authentication check
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// 2. Authorization check
			if err := checker.RequireRole(principal, roles...); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
