package prompts

// Example documents embedded in prompts. %[1]s is the JSON-quoted
// destination, %[2]d the duration and %[3]s the JSON-quoted currency code
// where they appear.

const tripPlanSchema = `{
  "destination": %[1]s,
  "duration": %[2]d,
  "currency": %[3]s,
  "itinerary": [
    {
      "day": 1,
      "places": [
        {
          "name": "Place name",
          "description": "Detailed description of the place",
          "category": "attraction|restaurant|accommodation|activity",
          "estimatedCost": 500,
          "estimatedTimeRequired": "2 hours",
          "bestTimeToVisit": "Morning/Afternoon/Evening",
          "location": {
            "address": "Full address if available",
            "googleMapsUrl": "Google Maps URL if available"
          },
          "imageUrl": "URL to an image of this place",
          "tips": ["Detailed tip 1", "Detailed tip 2"],
          "culturalSignificance": "Brief explanation of cultural importance if applicable"
        }
      ],
      "transportation": {
        "mode": "walking/bus/taxi/etc",
        "estimatedCost": 200,
        "details": "Specific details about the transportation option"
      },
      "meals": [
        {
          "type": "breakfast|lunch|dinner|snack",
          "suggestion": "Restaurant or food recommendation",
          "cuisine": "Type of cuisine",
          "specialDish": "Must-try dish at this place",
          "estimatedCost": 300,
          "location": "Area or address"
        }
      ],
      "accommodation": {
        "name": "Accommodation name",
        "type": "hotel/hostel/guesthouse/etc",
        "estimatedCost": 2000,
        "location": "Area or address",
        "amenities": ["Amenity 1", "Amenity 2"]
      },
      "totalDayCost": 3000
    }
  ],
  "summary": {
    "highlights": ["Detailed highlight 1", "Detailed highlight 2"],
    "totalCost": 15000,
    "averageDailyCost": 3000,
    "mustTryExperiences": ["Detailed experience 1", "Detailed experience 2"],
    "bestTimeToVisit": "Information about the best season to visit",
    "localCustoms": ["Custom 1", "Custom 2"],
    "packingTips": ["Packing tip 1", "Packing tip 2"],
    "safetyTips": ["Safety tip 1", "Safety tip 2"]
  }
}`

// %[1]s and %[2]s are the JSON-quoted place and destination, %[3]s the bare
// currency code.
const placeDetailsSchema = `{
  "name": %[1]s,
  "destination": %[2]s,
  "description": "Detailed description",
  "history": "Historical background",
  "significance": "Cultural or historical significance",
  "whyVisit": ["Reason 1", "Reason 2"],
  "costs": {
    "entryFee": "Amount in %[3]s",
    "guidedTour": "Amount in %[3]s",
    "audioGuide": "Amount in %[3]s",
    "otherFees": ["Fee description: Amount in %[3]s"]
  },
  "timing": {
    "bestTimeOfDay": "Morning/Afternoon/Evening",
    "bestSeason": "Season name",
    "openingHours": "Opening hours information",
    "timeRequired": "Recommended duration"
  },
  "tips": ["Detailed tip 1", "Detailed tip 2"],
  "nearby": {
    "attractions": ["Nearby place 1", "Nearby place 2"],
    "restaurants": ["Restaurant 1: cuisine type", "Restaurant 2: cuisine type"],
    "shopping": ["Shop 1: items available", "Shop 2: items available"]
  },
  "culturalNotes": ["Cultural note 1", "Cultural note 2"],
  "photographyTips": ["Photo tip 1", "Photo tip 2"],
  "accessibility": "Information about accessibility",
  "imageUrl": "URL to an image of this place",
  "googleMapsUrl": "Google Maps URL if available"
}`

const recommendationSchema = `[
  {
    "name": "Destination Name",
    "description": "Short description",
    "totalCost": 15000,
    "bestTimeToVisit": "October to March",
    "topAttractions": ["Attraction 1", "Attraction 2", "Attraction 3"]
  }
]`

// %[1]s is the JSON-quoted destination.
const destinationGuideSchema = `{
  "destination": %[1]s,
  "overview": "Detailed description (150-200 words)",
  "bestTimeToVisit": "Season information",
  "daysRecommended": 3,
  "budget": {
    "total": 15000,
    "accommodation": {"budget": 2000, "midRange": 4000, "luxury": 8000},
    "food": {"budget": 500, "midRange": 1000, "luxury": 2000},
    "transportation": 2000,
    "activities": 3000,
    "shopping": 2000
  },
  "accommodation": [
    {
      "name": "Hotel/Hostel Name",
      "type": "Budget/Mid-range/Luxury",
      "pricePerNight": 2000,
      "location": "Area name",
      "description": "Brief description",
      "amenities": ["WiFi", "AC"]
    }
  ],
  "attractions": [
    {
      "name": "Attraction Name",
      "description": "Description",
      "entryFee": 500,
      "timeRequired": "2-3 hours",
      "bestTimeToVisit": "Morning/Evening"
    }
  ],
  "activities": [
    {
      "name": "Activity Name",
      "description": "Description",
      "cost": 1000,
      "duration": "3 hours",
      "difficulty": "Easy/Moderate/Hard"
    }
  ],
  "food": [
    {
      "name": "Restaurant/Dish Name",
      "type": "Local cuisine/International",
      "priceRange": "Budget/Mid-range/Luxury",
      "mustTry": ["Dish 1", "Dish 2"],
      "location": "Area name"
    }
  ],
  "transportation": {
    "localOptions": ["Bus", "Auto", "Taxi"],
    "costs": {"bus": 20, "auto": 100, "taxi": 200},
    "tips": "Transportation tips"
  },
  "itinerary": [
    {
      "day": 1,
      "activities": [
        {"time": "Morning", "activity": "Visit X", "description": "Brief description"}
      ]
    }
  ],
  "tips": ["Tip 1", "Tip 2", "Tip 3"]
}`
