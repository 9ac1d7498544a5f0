package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mataro/market"
)

type createMarketItemRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required"`
	Images      []string `json:"images"`
	SellerID    string   `json:"sellerId" binding:"required"`
	SellerName  string   `json:"sellerName"`
	CreatePost  bool     `json:"createPost"`
}

func (a *API) CreateMarketItem(c *gin.Context) {
	var req createMarketItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	item, err := a.Market.Create(ctx, market.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		SellerID:    req.SellerID,
		SellerName:  req.SellerName,
		CreatePost:  req.CreatePost,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (a *API) ListMarketItems(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	items, err := a.Market.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
