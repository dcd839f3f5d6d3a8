package routes

import (
	"negoziocucine-backend/config"
	"negoziocucine-backend/controllers"
	"negoziocucine-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://www.negoziocucine.it",
			"https://admin.negoziocucine.it",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Public storefront endpoints, no auth
	catalog := r.Group("/catalog")
	{
		catalog.GET("/categories", controllers.GetCategories)
		catalog.GET("/products", controllers.GetCatalogProducts)
		catalog.GET("/products/:slug", controllers.GetProductBySlug)
	}
	r.POST("/bookings", controllers.BookAppointment)

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Category routes
		categories := api.Group("/categories")
		{
			categories.POST("", controllers.CreateCategory)
			categories.GET("", controllers.GetCategories)
			categories.GET("/:id", controllers.GetCategory)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
			products.POST("/:id/images", controllers.AddProductImage)
			products.DELETE("/:id/images/:imageId", controllers.DeleteProductImage)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
			appointments.POST("/:id/remind", controllers.RemindAppointment)
		}

		// Quote routes
		quotes := api.Group("/quotes")
		{
			quotes.POST("", controllers.CreateQuote)
			quotes.GET("", controllers.GetQuotes)
			quotes.GET("/:id", controllers.GetQuote)
			quotes.PUT("/:id", controllers.UpdateQuote)
			quotes.DELETE("/:id", controllers.DeleteQuote)

			quotes.POST("/:id/items", controllers.AddQuoteItem)
			quotes.PUT("/:id/items/:itemId", controllers.UpdateQuoteItem)
			quotes.DELETE("/:id/items/:itemId", controllers.DeleteQuoteItem)

			quotes.GET("/:id/pdf", controllers.QuotePDF)
			quotes.POST("/:id/email", controllers.EmailQuote)

			quotes.POST("/mark-sent", controllers.MarkQuotesSent)
			quotes.POST("/mark-accepted", controllers.MarkQuotesAccepted)
			quotes.POST("/email", controllers.EmailQuotes)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
