package service

import (
	"qkart/storefront-service/internal/app/storefront/entity"
)

// LineItemsFrom соединяет позиции корзины со снимком каталога
// Соединение идёт через lookup-таблицу по ID товара за O(n+m).
// Порядок результата повторяет порядок позиций корзины;
// позиции без товара в каталоге молча отбрасываются
func LineItemsFrom(entries []entity.CartEntry, products []entity.Product) []entity.CartLineItem {
	items := make([]entity.CartLineItem, 0, len(entries))
	if len(entries) == 0 || len(products) == 0 {
		return items
	}

	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, e := range entries {
		product, ok := byID[e.ProductID]
		if !ok {
			continue
		}
		items = append(items, entity.CartLineItem{
			Product:   product,
			ProductID: e.ProductID,
			Qty:       e.Qty,
		})
	}

	return items
}

// CartTotal возвращает суммарную стоимость позиций корзины
func CartTotal(items []entity.CartLineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Cost * float64(item.Qty)
	}
	return total
}

// OrderSummaryFrom строит панель "Order Details" для оформления заказа
// Доставка бесплатная
func OrderSummaryFrom(items []entity.CartLineItem) entity.OrderSummary {
	subtotal := CartTotal(items)
	return entity.OrderSummary{
		Products: len(items),
		Subtotal: subtotal,
		Shipping: 0,
		Total:    subtotal,
	}
}
