package handlers

import (
	"cottoncare/internal/advisor"
	"cottoncare/internal/config"
	"cottoncare/internal/detect"
	"cottoncare/internal/repos"
	"cottoncare/internal/services"
	"cottoncare/internal/store"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	DetectHandler  *DetectHandler
	AdviceHandler  *AdviceHandler
	AdminHandler   *AdminHandler
}

// NewDeps wires repositories, services and handlers over one store. adv may be nil,
// in which case the advice endpoints answer 503.
func NewDeps(s *store.Store, cfg config.Config, adv *advisor.Advisor, det *detect.Client) *Deps {
	prodRepo := repos.NewProductRepo(s)
	userRepo := repos.NewUserRepo(s)
	orderRepo := repos.NewOrderRepo(s)
	cartRepo := repos.NewCartRepo(s)

	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo, services.ParseStockPolicy(cfg.StockPolicy))
	orderSvc := services.NewOrderService(orderRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(cartSvc, orderSvc)
	var adviceSvc *services.AdviceService
	if adv != nil {
		adviceSvc = services.NewAdviceService(adv, catalogSvc)
	}

	return &Deps{
		Auth:           authSvc,
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Checkout: checkoutSvc, Orders: orderSvc},
		DetectHandler:  &DetectHandler{Detect: det, Catalog: catalogSvc},
		AdviceHandler:  &AdviceHandler{Advice: adviceSvc},
		AdminHandler:   &AdminHandler{Catalog: catalogSvc, Orders: orderSvc, Auth: authSvc},
	}
}
