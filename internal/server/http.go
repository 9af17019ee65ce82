package server

import (
	"strconv"
	"time"

	"scorekeeper/internal/conf"
	"scorekeeper/internal/service"

	"github.com/yola1107/kratos/v2/log"
	"github.com/yola1107/kratos/v2/middleware/recovery"
	"github.com/yola1107/kratos/v2/transport/http"
)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Server, score *service.ScoreService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Network != "" {
		opts = append(opts, http.Network(c.Http.Network))
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if d, err := time.ParseDuration(c.Http.Timeout); err == nil && d > 0 {
		opts = append(opts, http.Timeout(d))
	}
	srv := http.NewServer(opts...)
	registerScoreRoutes(srv, score)
	return srv
}

func registerScoreRoutes(srv *http.Server, score *service.ScoreService) {
	r := srv.Route("/")

	r.POST("/v1/rounds", func(ctx http.Context) error {
		var req service.RecordRoundRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := score.RecordRound(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.PUT("/v1/matches/{match}/rounds/{index}", func(ctx http.Context) error {
		index, err := strconv.Atoi(ctx.Vars().Get("index"))
		if err != nil {
			return err
		}
		var req service.EditRoundRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		req.MatchID = ctx.Vars().Get("match")
		req.RoundIndex = index
		reply, err := score.EditRound(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.POST("/v1/matches/finish", func(ctx http.Context) error {
		var req service.FinishMatchRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		reply, err := score.FinishMatch(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/v1/matches/{match}/score", func(ctx http.Context) error {
		reply, err := score.MatchScore(ctx, ctx.Vars().Get("match"))
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})

	r.GET("/v1/players/{player}/statistics", func(ctx http.Context) error {
		reply, err := score.PlayerStatistics(ctx, ctx.Vars().Get("player"))
		if err != nil {
			return err
		}
		return ctx.Result(200, reply)
	})
}
