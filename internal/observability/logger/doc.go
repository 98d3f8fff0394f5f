// Package logger expone un logger Zap de proceso con scoping por contexto.
//
// Init se llama una vez desde cmd/service; el resto del código usa From(ctx)
// para obtener el logger del request (request_id, method, path) que inyecta
// el middleware de logging, o L() cuando no hay request en curso.
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Signup"))
//	log.Info("profile inserted", logger.AuthUID(uid))
package logger
