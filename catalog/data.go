package catalog

import "storefront/models"

const placeholderImage = "/placeholder.svg?height=400&width=400"

var defaultProducts = []models.Product{
	{ID: 1, Name: "Good Day Cashew Cookies", Description: "Rich, buttery cookies loaded with crunchy cashew pieces.", Price: 45.00, Image: placeholderImage, Category: models.CategoryCookies, IsBestSeller: true},
	{ID: 2, Name: "Marie Gold", Description: "The classic tea-time biscuit, light and crisp with a hint of sweetness.", Price: 30.00, Image: placeholderImage, Category: models.CategoryBiscuits, IsBestSeller: true},
	{ID: 3, Name: "Bourbon", Description: "Chocolate cream sandwiched between two chocolate biscuits, dusted with sugar.", Price: 35.00, Image: placeholderImage, Category: models.CategoryBiscuits},
	{ID: 4, Name: "NutriChoice Digestive", Description: "High-fibre whole wheat digestive biscuits for a wholesome snack.", Price: 55.00, Image: placeholderImage, Category: models.CategoryBiscuits},
	{ID: 5, Name: "Treat Croissant", Description: "Soft, flaky croissant with a creamy vanilla filling.", Price: 25.00, Image: placeholderImage, Category: models.CategoryCakes, IsNew: true},
	{ID: 6, Name: "Fruit Cake", Description: "Moist sponge cake studded with tutti-frutti and raisins.", Price: 60.00, Image: placeholderImage, Category: models.CategoryCakes},
	{ID: 7, Name: "Chocolate Chip Cookies", Description: "Golden cookies packed with real chocolate chips.", Price: 40.00, Image: placeholderImage, Category: models.CategoryCookies, IsNew: true},
	{ID: 8, Name: "Milk Bread", Description: "Soft white sandwich bread made with milk for everyday breakfasts.", Price: 50.00, Image: placeholderImage, Category: models.CategoryBread},
	{ID: 9, Name: "100% Whole Wheat Bread", Description: "Wholesome sliced bread baked with whole wheat flour.", Price: 55.00, Image: placeholderImage, Category: models.CategoryBread},
	{ID: 10, Name: "Cheese Slices", Description: "Creamy processed cheese slices, perfect for sandwiches and burgers.", Price: 120.00, Image: placeholderImage, Category: models.CategoryDairy, IsBestSeller: true},
	{ID: 11, Name: "Winkin' Cow Thick Shake", Description: "Ready-to-drink chocolate milkshake, thick and chilled.", Price: 40.00, Image: placeholderImage, Category: models.CategoryDairy, IsNew: true},
	{ID: 12, Name: "50-50 Maska Chaska", Description: "Sweet and salty crackers with a buttery glaze.", Price: 20.00, Image: placeholderImage, Category: models.CategoryBiscuits},
}

var defaultRecipes = []models.Recipe{
	{ID: 1, Title: "Bourbon Chocolate Trifle", Description: "A decadent dessert made with layers of Bourbon biscuits, chocolate pudding, and whipped cream.", Category: models.CategoryDesserts, Time: "30 min", Servings: 4, Difficulty: "Easy", Image: placeholderImage},
	{ID: 2, Title: "Marie Gold Cheesecake", Description: "A no-bake cheesecake with a Marie Gold biscuit base and a creamy vanilla topping.", Category: models.CategoryDesserts, Time: "45 min", Servings: 6, Difficulty: "Medium", Image: placeholderImage},
	{ID: 3, Title: "Good Day Cookie Ice Cream", Description: "Homemade vanilla ice cream with chunks of Good Day cookies for added crunch and flavor.", Category: models.CategoryDesserts, Time: "60 min", Servings: 8, Difficulty: "Medium", Image: placeholderImage},
	{ID: 4, Title: "Cheese Toast Fingers", Description: "Crispy milk bread toast topped with melted cheese slices and herbs.", Category: models.CategorySnacks, Time: "15 min", Servings: 2, Difficulty: "Easy", Image: placeholderImage},
	{ID: 5, Title: "Digestive Biscuit Parfait", Description: "Yogurt, honey and fresh fruit layered with crushed NutriChoice digestives.", Category: models.CategoryBreakfast, Time: "10 min", Servings: 2, Difficulty: "Easy", Image: placeholderImage},
	{ID: 6, Title: "French Toast Sticks", Description: "Whole wheat bread dipped in spiced egg batter and pan-fried until golden.", Category: models.CategoryBreakfast, Time: "20 min", Servings: 3, Difficulty: "Easy", Image: placeholderImage},
	{ID: 7, Title: "Biscuit Pizza Bites", Description: "Marie Gold biscuits topped with tomato, cheese and veggies for a fun after-school snack.", Category: models.CategoryKids, Time: "25 min", Servings: 4, Difficulty: "Easy", Image: placeholderImage},
	{ID: 8, Title: "Chocolate Cookie Milkshake", Description: "Thick shake blended with chocolate chip cookies and a scoop of ice cream.", Category: models.CategoryKids, Time: "5 min", Servings: 2, Difficulty: "Easy", Image: placeholderImage},
}
