package server

import (
	"net/http"

	"peer-bidding/internal/eventbus"
	handler "peer-bidding/services/bidding/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application.
// swarm, when not nil, accepts overlay connections from other peers on /swarm.
func SetupRouter(sess handler.SessionInterface, history *eventbus.History, bus *eventbus.Bus, swarm http.Handler) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	biddingHandler := handler.NewBiddingHandler(sess, history, bus)

	rooms := router.Group("/rooms")
	{
		rooms.POST("", biddingHandler.CreateRoomHandler)
		rooms.POST("/join", biddingHandler.JoinRoomHandler)
	}
	router.GET("/room", biddingHandler.GetRoomHandler)

	bids := router.Group("/bids")
	{
		bids.POST("", biddingHandler.CreateBidHandler)
		bids.GET("", biddingHandler.ListBidsHandler)
		bids.GET("/:item_id", biddingHandler.GetBidHandler)
		bids.POST("/:item_id/close", biddingHandler.CloseBidHandler)
	}

	router.POST("/offers", biddingHandler.PlacePriceHandler)
	router.POST("/announcements", biddingHandler.AnnounceHandler)
	router.GET("/messages", biddingHandler.MessagesHandler)
	router.GET("/events", biddingHandler.EventsHandler)

	if swarm != nil {
		router.GET("/swarm", gin.WrapH(swarm))
	}

	return router
}
