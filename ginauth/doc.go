// Package ginauth mounts authentication strategies onto a Gin router.
//
// It is the host-side glue between HTTP and the strategy contract: a login
// route that emits the strategy's entry action (the authorization redirect
// for OIDC) and a callback route that binds the provider's response into a
// payload and runs Authenticate.
//
//	strat, err := oidc.New(cfg, verify)
//	if err != nil {
//		return err
//	}
//
//	r := gin.New()
//	r.Use(ginauth.RequestID())
//	ginauth.Mount(r.Group("/auth/oidc"), strat)
//	r.GET("/health", ginauth.HealthHandler("login-svc", version.GetShortVersion(), strat))
//	r.GET("/version", ginauth.VersionHandler())
//
// Outcome mapping: a redirect action becomes a 302, a result becomes a 200
// data envelope, a declined attempt becomes a 204, and errors are rendered
// through the shared AppError response shape with their own HTTP status.
package ginauth
