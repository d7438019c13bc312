package service

import (
	"sort"
	"strings"

	"qkart/storefront-service/internal/app/storefront/entity"
)

// ApplyFilter строит видимый список товаров из снимка каталога
// Этапы применяются в фиксированном порядке: текстовый фильтр,
// фильтр по категории, сортировка. Пустое значение этапа - no-op.
// Снимок каталога не изменяется
func ApplyFilter(products []entity.Product, filter entity.FilterState) []entity.Product {
	visible := make([]entity.Product, 0, len(products))

	if filter.SearchText != "" {
		needle := strings.ToLower(filter.SearchText)
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Category), needle) {
				visible = append(visible, p)
			}
		}
	} else {
		visible = append(visible, products...)
	}

	if filter.SelectedCategory != "" {
		filtered := visible[:0]
		for _, p := range visible {
			if p.Category == filter.SelectedCategory {
				filtered = append(filtered, p)
			}
		}
		visible = filtered
	}

	// Стабильная сортировка: равные значения сохраняют порядок каталога
	switch filter.SortKey {
	case entity.SortPriceHighToLow:
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].Cost > visible[j].Cost
		})
	case entity.SortPriceLowToHigh:
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].Cost < visible[j].Cost
		})
	case entity.SortRating:
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].Rating > visible[j].Rating
		})
	}

	return visible
}

// CategoriesFrom возвращает уникальные категории снимка каталога
// в порядке первого появления (для выпадающего фильтра категорий)
func CategoriesFrom(products []entity.Product) []string {
	seen := make(map[string]struct{}, len(products))
	categories := make([]string, 0, len(products))

	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	return categories
}
