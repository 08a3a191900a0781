package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type seedRow struct {
	name, description, category, price string
	stock                              int
	imageURL, unit                     string
}

var defaultCatalog = []seedRow{
	{"Apple", "Fresh red apples", "Fruits", "120.00", 100, "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?w=300", "kg"},
	{"Banana", "Ripe yellow bananas", "Fruits", "60.00", 150, "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=300", "dozen"},
	{"Mango", "Sweet mangoes", "Fruits", "200.00", 80, "https://images.unsplash.com/photo-1553279768-865429fa0078?w=300", "kg"},
	{"Grapes", "Fresh grapes", "Fruits", "150.00", 60, "https://images.unsplash.com/photo-1537640538966-79f369143f8f?w=300", "kg"},
	{"Strawberries", "Fresh strawberries", "Fruits", "300.00", 40, "https://images.unsplash.com/photo-1464965911861-746a04b4bca6?w=300", "pack"},
	{"Kiwi", "Fresh kiwi fruit", "Fruits", "250.00", 30, "https://images.unsplash.com/photo-1585059895524-72359e06133a?w=300", "kg"},
	{"Pineapple", "Fresh pineapple", "Fruits", "80.00", 25, "https://images.unsplash.com/photo-1550258987-190a2d41a8ba?w=300", "piece"},
	{"Papaya", "Ripe papaya", "Fruits", "40.00", 50, "https://images.unsplash.com/photo-1617112848923-cc2234396a8d?w=300", "kg"},
	{"Guava", "Fresh guava", "Fruits", "60.00", 45, "https://images.unsplash.com/photo-1536511132770-e5058c4e1d63?w=300", "kg"},
	{"Pear", "Fresh pears", "Fruits", "180.00", 35, "https://images.unsplash.com/photo-1568702846914-96b305d2aaeb?w=300", "kg"},
	{"Tomato", "Fresh red tomatoes", "Vegetables", "40.00", 200, "https://images.unsplash.com/photo-1546470427-e5380e0e8b5a?w=300", "kg"},
	{"Potato", "Fresh potatoes", "Vegetables", "25.00", 250, "https://images.unsplash.com/photo-1518977676601-b53f82aba655?w=300", "kg"},
	{"Onion", "Fresh onions", "Vegetables", "30.00", 180, "https://images.unsplash.com/photo-1518977676601-b53f82aba655?w=300", "kg"},
	{"Carrot", "Fresh carrots", "Vegetables", "50.00", 100, "https://images.unsplash.com/photo-1445282768818-728615cc910a?w=300", "kg"},
	{"Cucumber", "Fresh cucumbers", "Vegetables", "35.00", 120, "https://images.unsplash.com/photo-1449300079323-02e209d9d3a6?w=300", "kg"},
	{"Spinach", "Fresh green spinach", "Vegetables", "35.00", 80, "https://images.unsplash.com/photo-1576045057995-568f588f82fb?w=300", "bunch"},
	{"Broccoli", "Fresh broccoli", "Vegetables", "80.00", 60, "https://images.unsplash.com/photo-1459411621453-7b03977f4bfc?w=300", "kg"},
	{"Cabbage", "Fresh cabbage", "Vegetables", "25.00", 90, "https://images.unsplash.com/photo-1594282486552-05b4d80fbb9f?w=300", "kg"},
	{"Garlic", "Fresh garlic", "Vegetables", "200.00", 50, "https://images.unsplash.com/photo-1471195696693-5f425d0c7b5b?w=300", "kg"},
	{"Ginger", "Fresh ginger", "Vegetables", "150.00", 40, "https://images.unsplash.com/photo-1471195696693-5f425d0c7b5b?w=300", "kg"},
	{"Lays Chips", "Classic salted chips", "Snacks", "20.00", 100, "https://images.unsplash.com/photo-1566478989037-eec170784d0b?w=300", "pack"},
	{"Kurkure", "Crunchy corn snacks", "Snacks", "15.00", 80, "https://images.unsplash.com/photo-1566478989037-eec170784d0b?w=300", "pack"},
	{"Popcorn", "Butter popcorn", "Snacks", "25.00", 60, "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=300", "pack"},
	{"Nachos", "Cheese nachos", "Snacks", "30.00", 50, "https://images.unsplash.com/photo-1513456852971-30c0b8199d4d?w=300", "pack"},
	{"Cookies", "Chocolate chip cookies", "Snacks", "40.00", 70, "https://images.unsplash.com/photo-1499636136210-6f4ee915583e?w=300", "pack"},
	{"Chocolate Bar", "Dark chocolate bar", "Snacks", "50.00", 90, "https://images.unsplash.com/photo-1511381939415-e44015466834?w=300", "piece"},
	{"Peanuts", "Roasted peanuts", "Snacks", "80.00", 40, "https://images.unsplash.com/photo-1566478989037-eec170784d0b?w=300", "pack"},
	{"Trail Mix", "Mixed nuts and dried fruits", "Snacks", "120.00", 35, "https://images.unsplash.com/photo-1566478989037-eec170784d0b?w=300", "pack"},
	{"Namkeen", "Traditional Indian snacks", "Snacks", "60.00", 55, "https://images.unsplash.com/photo-1566478989037-eec170784d0b?w=300", "pack"},
	{"Bhujia", "Spicy sev bhujia", "Snacks", "45.00", 65, "https://images.unsplash.com/photo-1566478989037-eec170784d0b?w=300", "pack"},
	{"Coca-Cola", "Classic Coke", "Beverages", "40.00", 100, "https://images.unsplash.com/photo-1561758033-d89a9ad46330?w=300", "bottle"},
	{"Pepsi", "Pepsi cola", "Beverages", "40.00", 95, "https://images.unsplash.com/photo-1561758033-d89a9ad46330?w=300", "bottle"},
	{"Mango Juice", "Fresh mango juice", "Beverages", "60.00", 70, "https://images.unsplash.com/photo-1621506289937-a8e4df240d0b?w=300", "bottle"},
	{"Iced Tea", "Lemon iced tea", "Beverages", "35.00", 80, "https://images.unsplash.com/photo-1544787219-7f47ccb76574?w=300", "bottle"},
	{"Lemonade", "Fresh lemonade", "Beverages", "30.00", 60, "https://images.unsplash.com/photo-1621506289937-a8e4df240d0b?w=300", "glass"},
	{"Buttermilk", "Traditional buttermilk", "Beverages", "25.00", 50, "https://images.unsplash.com/photo-1550583724-b2692b85b150?w=300", "glass"},
	{"Cold Coffee", "Iced coffee", "Beverages", "80.00", 45, "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=300", "glass"},
	{"Energy Drink", "Sports energy drink", "Beverages", "100.00", 40, "https://images.unsplash.com/photo-1561758033-d89a9ad46330?w=300", "can"},
	{"Soda", "Lime soda", "Beverages", "25.00", 85, "https://images.unsplash.com/photo-1561758033-d89a9ad46330?w=300", "bottle"},
	{"Milk", "Fresh whole milk", "Dairy", "60.00", 100, "https://images.unsplash.com/photo-1550583724-b2692b85b150?w=300", "liter"},
	{"Cheese", "Processed cheese", "Dairy", "200.00", 40, "https://images.unsplash.com/photo-1486297678162-eb2a19b0a32d?w=300", "pack"},
	{"Yogurt", "Plain yogurt", "Dairy", "80.00", 60, "https://images.unsplash.com/photo-1571212515416-fca0bf4c5ac4?w=300", "cup"},
	{"Butter", "Fresh butter", "Dairy", "120.00", 50, "https://images.unsplash.com/photo-1589985270826-4b7bb135bc9d?w=300", "pack"},
	{"Paneer", "Fresh paneer", "Dairy", "300.00", 30, "https://images.unsplash.com/photo-1486297678162-eb2a19b0a32d?w=300", "kg"},
	{"Ghee", "Pure ghee", "Dairy", "500.00", 25, "https://images.unsplash.com/photo-1589985270826-4b7bb135bc9d?w=300", "kg"},
	{"Cream", "Fresh cream", "Dairy", "150.00", 35, "https://images.unsplash.com/photo-1550583724-b2692b85b150?w=300", "pack"},
	{"Ice Cream", "Vanilla ice cream", "Dairy", "200.00", 40, "https://images.unsplash.com/photo-1567206563064-6f60f40a2b57?w=300", "tub"},
	{"Lassi", "Sweet lassi", "Dairy", "40.00", 50, "https://images.unsplash.com/photo-1571212515416-fca0bf4c5ac4?w=300", "glass"},
	{"Flavored Milk", "Chocolate flavored milk", "Dairy", "35.00", 70, "https://images.unsplash.com/photo-1550583724-b2692b85b150?w=300", "bottle"},
	{"Bread", "White bread loaf", "Bakery", "35.00", 50, "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=300", "loaf"},
	{"Brown Bread", "Whole wheat bread", "Bakery", "45.00", 40, "https://images.unsplash.com/photo-1549931319-a545dcf3bc73?w=300", "loaf"},
	{"Croissant", "Butter croissant", "Bakery", "25.00", 30, "https://images.unsplash.com/photo-1555507036-ab794f4afe5e?w=300", "piece"},
	{"Donut", "Glazed donut", "Bakery", "40.00", 35, "https://images.unsplash.com/photo-1551024506-0bccd828d307?w=300", "piece"},
	{"Muffin", "Blueberry muffin", "Bakery", "60.00", 25, "https://images.unsplash.com/photo-1607958996333-41aef7caefaa?w=300", "piece"},
	{"Cupcake", "Chocolate cupcake", "Bakery", "50.00", 40, "https://images.unsplash.com/photo-1576618148400-f54bed99fcfd?w=300", "piece"},
	{"Rusk", "Tea rusk", "Bakery", "30.00", 60, "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=300", "pack"},
	{"Pizza Base", "Ready pizza base", "Bakery", "80.00", 20, "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=300", "piece"},
	{"Pastry", "Chocolate pastry", "Bakery", "120.00", 15, "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=300", "piece"},
	{"Garlic Bread", "Garlic bread sticks", "Bakery", "100.00", 25, "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=300", "pack"},
	{"Frozen Fries", "Crispy frozen fries", "Frozen", "150.00", 40, "https://images.unsplash.com/photo-1518977676601-b53f82aba655?w=300", "pack"},
	{"Frozen Pizza", "Margherita frozen pizza", "Frozen", "300.00", 20, "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=300", "piece"},
	{"Frozen Nuggets", "Chicken nuggets", "Frozen", "250.00", 30, "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=300", "pack"},
	{"Frozen Cutlets", "Vegetable cutlets", "Frozen", "200.00", 25, "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=300", "pack"},
	{"Frozen Paneer", "Frozen paneer cubes", "Frozen", "350.00", 15, "https://images.unsplash.com/photo-1486297678162-eb2a19b0a32d?w=300", "pack"},
	{"Frozen Peas", "Green peas", "Frozen", "80.00", 50, "https://images.unsplash.com/photo-1576045057995-568f588f82fb?w=300", "pack"},
	{"Frozen Berries", "Mixed berries", "Frozen", "400.00", 20, "https://images.unsplash.com/photo-1464965911861-746a04b4bca6?w=300", "pack"},
	{"Rice", "Basmati rice", "Grains", "120.00", 100, "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=300", "kg"},
	{"Wheat Flour", "Whole wheat flour", "Grains", "40.00", 150, "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?w=300", "kg"},
	{"Oats", "Rolled oats", "Grains", "200.00", 60, "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?w=300", "kg"},
	{"Cornflakes", "Breakfast cornflakes", "Grains", "150.00", 40, "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?w=300", "pack"},
	{"Poha", "Flattened rice", "Grains", "60.00", 80, "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=300", "kg"},
	{"Millets", "Mixed millets", "Grains", "100.00", 50, "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?w=300", "kg"},
	{"Quinoa", "Organic quinoa", "Grains", "400.00", 25, "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?w=300", "kg"},
	{"Barley", "Pearl barley", "Grains", "80.00", 45, "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?w=300", "kg"},
	{"Rava", "Semolina", "Grains", "50.00", 70, "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?w=300", "kg"},
	{"Basmati Rice", "Premium basmati rice", "Grains", "180.00", 60, "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=300", "kg"},
}

// DefaultCatalog returns the starter catalog inserted into an empty store.
// Ids are left blank for the catalog service to assign.
func DefaultCatalog(now time.Time) []Item {
	items := make([]Item, 0, len(defaultCatalog))
	for _, r := range defaultCatalog {
		items = append(items, Item{
			Name:          r.name,
			Description:   r.description,
			Category:      r.category,
			Price:         decimal.RequireFromString(r.price),
			StockQuantity: r.stock,
			ImageURL:      r.imageURL,
			Unit:          r.unit,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return items
}
