package handlers

import "github.com/gin-gonic/gin"

// Handlers bundles every API handler
type Handlers struct {
	Advice   *AdviceHandler
	Analysis *AnalysisHandler
	Days     *DayHandler
	Profile  *ProfileHandler
	Products *ProductHandler
}

// Register mounts the API routes on an authenticated group
func (h Handlers) Register(g *gin.RouterGroup) {
	g.GET("/advice", h.Advice.GetAdvice)
	g.GET("/analysis", h.Analysis.GetAnalysis)

	g.GET("/days", h.Days.GetDays)
	g.PUT("/days/:date", h.Days.PutDay)
	g.DELETE("/days/:date", h.Days.DeleteDay)

	g.GET("/profile", h.Profile.GetProfile)
	g.PATCH("/profile", h.Profile.UpdateProfile)

	g.GET("/products", h.Products.GetProducts)
}
