package daemon

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/events"
	"github.com/charlie0129/unitconv/pkg/ledger"
	"github.com/charlie0129/unitconv/pkg/types"
	"github.com/charlie0129/unitconv/pkg/version"
)

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

func (s *Server) getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(s.conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func (s *Server) getCategories(c *gin.Context) {
	cats := s.catalog.Categories()
	ret := make([]types.CategoryInfo, 0, len(cats))
	for _, cat := range cats {
		convs, err := s.catalog.Conversions(cat)
		if err != nil {
			abort(c, http.StatusInternalServerError, err)
			return
		}
		info := types.CategoryInfo{Name: cat, Icon: cat.Icon()}
		for _, conv := range convs {
			info.Conversions = append(info.Conversions, conv.Label)
		}
		ret = append(ret, info)
	}
	c.IndentedJSON(http.StatusOK, ret)
}

func (s *Server) getConversions(c *gin.Context) {
	cat, err := s.catalog.ParseCategory(c.Param("category"))
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	convs, err := s.catalog.Conversions(cat)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, convs)
}

func (s *Server) getReference(c *gin.Context) {
	cat, err := s.catalog.ParseCategory(c.Param("category"))
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, types.ReferenceResponse{
		Category: cat,
		Lines:    catalog.QuickReference(cat),
	})
}

func (s *Server) getFunFact(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, catalog.RandomFact(nil))
}

func (s *Server) convert(c *gin.Context) {
	var req types.ConvertRequest
	if err := c.BindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if req.Value == nil {
		abort(c, http.StatusBadRequest, errors.New("value is required"))
		return
	}
	if math.IsNaN(*req.Value) || math.IsInf(*req.Value, 0) {
		abort(c, http.StatusBadRequest, fmt.Errorf("value must be a finite number, got %v", *req.Value))
		return
	}
	if (req.History || req.Favorite) && req.Session == "" {
		abort(c, http.StatusBadRequest, errors.New("a session is required to record history or favorites"))
		return
	}

	var conv catalog.Conversion
	var err error
	if req.Category != "" {
		var cat catalog.Category
		cat, err = s.catalog.ParseCategory(req.Category)
		if err == nil {
			conv, err = s.catalog.Lookup(cat, req.Conversion)
		}
	} else {
		conv, err = s.catalog.Find(req.Conversion)
	}
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}

	result := conv.Apply(*req.Value)
	resp := types.ConvertResponse{Result: result, Entry: result.Entry()}

	if req.Session != "" && (req.History || req.Favorite) {
		err := s.store.With(req.Session, func(l *ledger.Ledger) error {
			if req.History {
				l.AppendHistory(resp.Entry)
			}
			if req.Favorite {
				n := l.AddFavorite(resp.Entry)
				resp.Notice = &n
			}
			return nil
		})
		if err != nil {
			abort(c, statusFor(err), err)
			return
		}

		now := time.Now().Unix()
		if req.History {
			s.hub.Publish(events.HistoryAppended, events.LedgerEvent{Session: req.Session, Entry: resp.Entry, Accepted: true, Ts: now})
		}
		if req.Favorite {
			s.hub.Publish(events.FavoriteAdded, events.LedgerEvent{Session: req.Session, Entry: resp.Entry, Accepted: resp.Notice.OK(), Ts: now})
		}
	}

	logrus.WithFields(logrus.Fields{
		"conversion": conv.Key,
		"session":    req.Session,
	}).Debugf("converted: %s", resp.Entry)

	c.IndentedJSON(http.StatusOK, resp)
}
