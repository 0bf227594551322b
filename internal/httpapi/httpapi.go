// Package httpapi wires pkg/query.Service onto HTTP endpoints mirroring the
// blockheight / mainchain / blockheader / latestblock / latestheight /
// blocktransactions / transactioninfo / transactioninputs /
// transactionoutputs query surface.
package httpapi

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chain-lens/internal/metrics"
	"chain-lens/pkg/query"
)

// NewRouter builds the gin router for the given query Service.
func NewRouter(svc *query.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(ginZap(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/blockheight", withHash(func(c *gin.Context, hash string) {
		h, err := svc.Height(hash)
		respondField(c, "height", h, err)
	}))

	r.GET("/mainchain", withHash(func(c *gin.Context, hash string) {
		ok, err := svc.IsMainChain(hash)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"main_chain": ok})
	}))

	r.GET("/blockheader", withHash(func(c *gin.Context, hash string) {
		fields, err := svc.HeaderFields(hash)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"version":    fields.Version,
			"prev_block": fields.PrevHash,
			"mrkl_root":  fields.MerkleRoot,
			"time":       fields.Time,
			"bits":       fields.Bits,
			"nonce":      fields.Nonce,
		})
	}))

	r.GET("/latestblock", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"hash": svc.LatestTip()})
	})

	r.GET("/latestheight", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"height": svc.LatestHeight()})
	})

	r.GET("/blocktransactions", withHash(func(c *gin.Context, hash string) {
		txs, err := svc.BlockTransactions(hash)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, len(txs))
		for i, t := range txs {
			out[i] = gin.H{"tx_hash": t.TxID, "value": t.TotalBTC}
		}
		c.JSON(http.StatusOK, gin.H{"tx_count": len(out), "transactions": out})
	}))

	r.GET("/transactioninfo", withHash(func(c *gin.Context, hash string) {
		info, err := svc.TransactionInfo(hash)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"block_hash":      info.BlockHash,
			"version":         info.Version,
			"input_tx_count":  info.InputCount,
			"output_tx_count": info.OutputCount,
			"value":           info.TotalBTC,
			"lock_time":       info.LockTime,
		})
	}))

	r.GET("/transactioninputs", withHash(func(c *gin.Context, hash string) {
		inputs, err := svc.TransactionInputs(hash)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, len(inputs))
		for i, in := range inputs {
			out[i] = gin.H{"prev_hash": in.PrevTxID, "sig_script": in.Script, "seq_num": in.Sequence}
		}
		c.JSON(http.StatusOK, gin.H{"input_tx_count": len(out), "input_transactions": out})
	}))

	r.GET("/transactionoutputs", withHash(func(c *gin.Context, hash string) {
		outputs, err := svc.TransactionOutputs(hash)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, len(outputs))
		for i, o := range outputs {
			out[i] = gin.H{"value": o.Satoshi, "sig_script": o.Script}
		}
		c.JSON(http.StatusOK, gin.H{"output_tx_count": len(out), "output_transactions": out})
	}))

	return r
}

// withHash adapts a handler that needs a validated hash, read from the bare
// query string itself (e.g. "/blockheight?000000...ce26f") rather than a
// named parameter, matching the original reference server's
// urlparse(path).query handling.
func withHash(fn func(c *gin.Context, hash string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash, err := url.QueryUnescape(c.Request.URL.RawQuery)
		if err != nil || len(hash) != 64 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hash must be 64 hex characters"})
			return
		}
		fn(c, hash)
	}
}

func respondField(c *gin.Context, field string, value int32, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{field: value})
}

func respondError(c *gin.Context, err error) {
	var qerr *query.QueryError
	if !errors.As(err, &qerr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Error"})
		return
	}
	switch qerr.Kind {
	case query.MalformedHash:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Hash Format"})
	case query.NotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid Block Hash"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Error"})
	}
}

func ginZap(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
